// Package physics provides the plant models the depth controller drives.
//
// [ROV] is a deliberately crude first-order model: every unit of thrust
// moves the vehicle by a fixed gain, with no damping, buoyancy or depth
// limits. It satisfies [dynamo.Plant]:
//
//	rov := physics.NewROV(0, physics.DefaultGain)
//	rov.ApplyThrust(10)
//	rov.Depth() // 0.5
package physics
