// Package viz renders convergence records in the terminal.
//
// [PlotConvergence] draws a static log-log chart with asciigraph. [Model] is
// a Bubble Tea program that runs a sweep one sample count at a time and
// redraws after each entry.
//
// # Key Bindings
//
//	Space/P - Pause/Resume the sweep
//	Q/Esc   - Quit
package viz
