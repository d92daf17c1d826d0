// Package viz renders odometry runs in the terminal.
//
// [Live] is a Bubble Tea model that plays a run back frame by frame, drawing
// the ground-truth path and the dead-reckoning estimate on a Braille
// [Canvas] scaled to fit both.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	+/-   - Change playback speed
//	R     - Restart from the first sample
//	Q     - Quit
package viz
