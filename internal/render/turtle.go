package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"rulelab/internal/lsystem"
)

// TurtleStyle controls how a turtle drawing is rasterised.
type TurtleStyle struct {
	Size int
	// Margin is the fraction of the larger drawing extent left blank
	// around the drawing.
	Margin     float64
	Pen        int
	From, To   color.RGBA
	Background color.RGBA
}

// DefaultTurtleStyle returns a 400 pixel square with a yellow to dark red
// gradient along the drawing order.
func DefaultTurtleStyle() TurtleStyle {
	return TurtleStyle{
		Size:       400,
		Margin:     0.2,
		Pen:        3,
		From:       color.RGBA{R: 0xff, G: 0xed, B: 0xa0, A: 0xff},
		To:         color.RGBA{R: 0x80, G: 0x00, B: 0x26, A: 0xff},
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// DrawTurtle fits the drawing into a square image, centred, keeping the
// aspect ratio, and strokes every segment coloured by its position in the
// replayed sequence.
func DrawTurtle(d lsystem.Drawing, style TurtleStyle) *image.RGBA {
	size := max(style.Size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)

	dx, dy := d.Bounds.Dx(), d.Bounds.Dy()
	extent := math.Max(dx, dy)
	side := extent * (1 + style.Margin)
	if side <= 0 {
		side = 1
	}
	x0 := d.Bounds.Min.X - (side-dx)/2
	y0 := d.Bounds.Min.Y - (side-dy)/2
	scale := float64(size-1) / side
	project := func(p lsystem.Point) (int, int) {
		px := (p.X - x0) * scale
		py := float64(size-1) - (p.Y-y0)*scale
		return int(math.Round(px)), int(math.Round(py))
	}

	last := max(d.Length-1, 1)
	for _, seg := range d.Segments {
		col := Lerp(style.From, style.To, float64(seg.Index)/float64(last))
		ax, ay := project(seg.From)
		bx, by := project(seg.To)
		strokeLine(img, ax, ay, bx, by, style.Pen, col)
	}
	return img
}

// strokeLine draws a Bresenham line with a square pen.
func strokeLine(img *image.RGBA, x0, y0, x1, y1, pen int, col color.RGBA) {
	pen = max(pen, 1)
	lo := -(pen - 1) / 2
	hi := pen / 2
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	bounds := img.Bounds()
	e := dx + dy
	for {
		for oy := lo; oy <= hi; oy++ {
			for ox := lo; ox <= hi; ox++ {
				p := image.Pt(x0+ox, y0+oy)
				if p.In(bounds) {
					img.SetRGBA(p.X, p.Y, col)
				}
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
