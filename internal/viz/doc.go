// Package viz is the terminal live view of the depth loop.
//
// The view is a Bubble Tea program fed by [Sink], which the control loop
// drives like any other display:
//
//   - a Braille water column with the vehicle and the target depth
//   - asciigraph charts of the depth and thrust history
//   - the current depth, thrust and target readouts with the PID terms
//
// # Key Bindings
//
//	q     - Quit (stops the control loop)
//	Space - Freeze/unfreeze the display
//	+/-   - Change the pending target depth
//	Enter - Restart the run with the pending target
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
