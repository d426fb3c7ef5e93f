// Package dynamo provides the shared primitives of the depth control loop.
//
// The package defines the contracts that the rest of the simulator is
// written against:
//
//   - [Controller]: computes a bounded thrust command from a depth reading
//   - [Plant]: integrates thrust into a depth state
//   - [Metric]: observes every tick of a run and reduces it to a number
//   - [Sample], [Result]: what a run leaves behind
//
// # Example
//
//	rov := physics.NewROV(0, physics.DefaultGain)
//	pid, _ := control.NewPID(control.Gains{Kp: 1.2, Ki: 0.1, Kd: 0.5}, 10, 0.1)
//	d := rov.Depth()
//	rov.ApplyThrust(pid.Compute(d))
//
// # Thread Safety
//
// Controllers and plants are NOT thread-safe. The control loop driver in
// package sim owns them and serialises every access.
package dynamo
