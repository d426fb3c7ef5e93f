// Package control provides the depth controllers.
//
// Controllers implement [dynamo.Controller]: one call per sample period,
// one bounded thrust command out.
//
//   - [PID]: discrete PID with output saturation (the reference controller)
//   - [Einride]: the same loop law backed by go.einride.tech/pid
//   - [None]: open loop, always zero thrust
//
// # Usage
//
//	pid, err := control.NewPID(control.Gains{Kp: 1.2, Ki: 0.1, Kd: 0.5}, 10, 0.1)
//	if err != nil { ... } // dt <= 0
//	u := pid.Compute(depth) // always within [-10, 10]
//
// Controllers are looked up by name with [New], which is how configuration
// files select them.
package control
