// Package viz hosts the particle field in a terminal.
//
// The field is rasterized onto a braille [Canvas]: every terminal cell is
// 2x4 dots standing for 8x16 logical pixels, and each cell is tinted with the
// most opaque color drawn into it. Terminal cells cannot show the faint dim
// layer, ambient wash or halos, so [Surface] drops fills below MinFill and
// only draws the closer, brighter links.
//
// [Model] is a Bubble Tea program: ticks drive the frame scheduler, mouse
// motion spawns particles, and window size messages resize the field.
//
// # Key Bindings
//
//	R - Reseed the field
//	T - Cycle color themes
//	H - Toggle the status line
//	Q - Quit
package viz
