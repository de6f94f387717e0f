// Package diagram draws chord fingerings as text and as PNG charts.
//
// # Text diagrams
//
//	for _, line := range diagram.Lines(fingering) {
//	    fmt.Println(line)
//	}
//
// # Charts
//
//	r := diagram.NewChartRenderer()
//	data, err := r.RenderPNG(ctx, "C", fingering, 240, 300)
//
// Both forms show the same fret window (see Window).
package diagram
