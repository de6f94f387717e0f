package diagram

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/handiism/chordfinder/internal/finder"
)

// Layout of the chart before scaling, in pixels.
const (
	cellSize    = 24
	marginLeft  = 36
	marginRight = 24
	titleHeight = 18
	markHeight  = 16
	marginTail  = 12
	dotRadius   = 7
)

var (
	paper = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ink   = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// ChartRenderer draws fingerings as PNG chord charts.
//
// The chart shows strings as vertical lines, lowest on the left, and frets
// as horizontal lines. Stopped frets are dots, open strings an "o" and
// muted strings an "x" above the nut. When the window does not start at
// the nut its first fret is printed on the left.
//
// Example:
//
//	r := NewChartRenderer()
//	data, err := r.RenderPNG(ctx, "Am", fingering, 240, 300)
//	os.WriteFile("Am.png", data, 0644)
type ChartRenderer struct {
	face font.Face
}

// NewChartRenderer creates a renderer using the built-in 7x13 bitmap font.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{face: basicfont.Face7x13}
}

// RenderPNG draws f with title and returns PNG bytes scaled to fit within
// maxWidth x maxHeight, preserving the aspect ratio.
//
// The Catmull-Rom algorithm is used for scaling.
func (r *ChartRenderer) RenderPNG(ctx context.Context, title string, f finder.Fingering, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := r.draw(title, f)
	bounds := src.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit scales width x height to the largest size within maxWidth x
// maxHeight with the same aspect ratio.
func fit(width, height, maxWidth, maxHeight int) (int, int) {
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}

func (r *ChartRenderer) draw(title string, f finder.Fingering) *image.RGBA {
	start, end := Window(f)
	first := max(start, 1)
	rows := end - first + 1
	strings := max(f.Len(), 1)

	gridTop := titleHeight + markHeight
	width := marginLeft + (strings-1)*cellSize + marginRight
	height := gridTop + rows*cellSize + marginTail

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	r.text(img, title, width/2-font.MeasureString(r.face, title).Ceil()/2, titleHeight-4)

	// Nut, drawn thicker when the window starts at fret 0.
	nut := 1
	if start == 0 {
		nut = 4
	}
	gridRight := marginLeft + (strings-1)*cellSize
	fill(img, image.Rect(marginLeft, gridTop-nut+1, gridRight+1, gridTop+1))

	for row := 1; row <= rows; row++ {
		y := gridTop + row*cellSize
		fill(img, image.Rect(marginLeft, y, gridRight+1, y+1))
	}
	for s := 0; s < strings; s++ {
		x := marginLeft + s*cellSize
		fill(img, image.Rect(x, gridTop, x+1, gridTop+rows*cellSize+1))
	}

	if start > 0 {
		label := strconv.Itoa(start)
		r.text(img, label, marginLeft-8-font.MeasureString(r.face, label).Ceil(), gridTop+cellSize/2+5)
	}

	for s, fret := range f.Frets() {
		x := marginLeft + s*cellSize
		switch {
		case fret == finder.Muted:
			r.text(img, "x", x-3, gridTop-4)
		case fret == 0:
			r.text(img, "o", x-3, gridTop-4)
		default:
			y := gridTop + (fret-first)*cellSize + cellSize/2
			dot(img, x, y, dotRadius)
		}
	}
	return img
}

func (r *ChartRenderer) text(img *image.RGBA, s string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fill(img *image.RGBA, rect image.Rectangle) {
	draw.Draw(img, rect, image.NewUniform(ink), image.Point{}, draw.Src)
}

func dot(img *image.RGBA, cx, cy, radius int) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				img.SetRGBA(cx+x, cy+y, ink)
			}
		}
	}
}
