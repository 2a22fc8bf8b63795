package render

import (
	"image"
	"image/color"
	"image/draw"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	labelHeight   = 14
	labelBaseline = 10
	sheetGap      = 6
)

var (
	sheetBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	labelColor      = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
)

// Canvas adapts an RGBA image to the drivers.Displayer interface so tinyfont
// can draw text into it.
type Canvas struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas wraps img.
func NewCanvas(img *image.RGBA) *Canvas { return &Canvas{img: img} }

// Size reports the canvas extent relative to its origin.
func (c *Canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel writes one pixel; coordinates outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	b := c.img.Bounds()
	px, py := b.Min.X+int(x), b.Min.Y+int(y)
	if !image.Pt(px, py).In(b) {
		return
	}
	c.img.SetRGBA(px, py, col)
}

// Display is a no-op; pixels land in the image immediately.
func (c *Canvas) Display() error { return nil }

// Label writes text with its baseline at (x, y).
func (c *Canvas) Label(x, y int, text string, col color.RGBA) {
	tinyfont.WriteLine(c, &proggy.TinySZ8pt7b, int16(x), int16(y), text, col)
}

// Panel is one titled image on a sheet.
type Panel struct {
	Title string
	Image image.Image
}

// Sheet lays panels out on a near-square grid chosen by Factorize, each with
// its title above it.
func Sheet(panels []Panel) *image.RGBA {
	rows, cols := Factorize(len(panels), 1, 1)
	if rows == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	cellW, cellH := 0, 0
	for _, p := range panels {
		b := p.Image.Bounds()
		cellW = max(cellW, b.Dx())
		cellH = max(cellH, b.Dy())
	}
	cellH += labelHeight
	width := cols*cellW + (cols+1)*sheetGap
	height := rows*cellH + (rows+1)*sheetGap
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)

	for i, p := range panels {
		r, c := i/cols, i%cols
		x := sheetGap + c*(cellW+sheetGap)
		y := sheetGap + r*(cellH+sheetGap)
		cell := img.SubImage(image.Rect(x, y, x+cellW, y+cellH)).(*image.RGBA)
		NewCanvas(cell).Label(0, labelBaseline, p.Title, labelColor)
		b := p.Image.Bounds()
		dst := image.Rect(x, y+labelHeight, x+b.Dx(), y+labelHeight+b.Dy())
		draw.Draw(img, dst, p.Image, b.Min, draw.Src)
	}
	return img
}
