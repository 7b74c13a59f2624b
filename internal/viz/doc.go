// Package viz draws a running system in the terminal.
//
// [Model] is a Bubble Tea program showing a braille top-down view of the
// orbits with a side panel of clock, scale and energy drift. [Picker]
// selects and tweaks a preset before handing over to a [Model].
//
// # Key Bindings
//
//	Space - Pause/Resume
//	P     - Toggle physics / analytic orbits
//	[ ]   - Halve / double the time scale
//	, .   - Halve / double the solver iterations
//	Tab   - Follow the next body
//	?     - Show help overlay
package viz
