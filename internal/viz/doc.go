// Package viz provides the terminal live view of a streaming integral.
//
// The view is a Bubble Tea program driven by its own tick command; every
// tick advances the [stream.Session] once while it is running.
//
// # Key Bindings
//
//	Space - Start/Pause accumulation
//	R     - Reset the session
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
