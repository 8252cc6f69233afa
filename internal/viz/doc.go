// Package viz plays animations in the terminal.
//
// Frames are rasterised at one pixel per braille dot and drawn on a [Canvas]
// whose cells keep the scene colours. [Model] is a Bubble Tea program with a
// sidebar showing the current frame's samples.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[ ]   - Step one frame back or forward
//	Q     - Quit
//
// # Recording
//
// G starts recording the frames played at full resolution; pressing it again
// writes <script>_<unix>.gif into the record directory.
package viz
