package render

import (
	"image"
	"image/color"
)

// SpaceTimeImage draws one row of pixels per state, top to bottom, each
// cell scaled to a scale x scale block. Rows shorter than the first are
// padded with palette entry 0.
func SpaceTimeImage(rows [][]uint8, palette []color.RGBA, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := 0
	if len(rows) > 0 {
		w = len(rows[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, len(rows)*scale))
	if w == 0 {
		return img
	}
	line := make([]byte, 4*w)
	cells := make([]uint8, w)
	for y, row := range rows {
		n := copy(cells, row)
		for i := n; i < w; i++ {
			cells[i] = 0
		}
		FillCells(line, cells, palette)
		for dy := 0; dy < scale; dy++ {
			off := (y*scale + dy) * img.Stride
			dst := img.Pix[off : off+4*w*scale]
			for x := 0; x < w; x++ {
				px := line[4*x : 4*x+4]
				for dx := 0; dx < scale; dx++ {
					copy(dst[4*(x*scale+dx):], px)
				}
			}
		}
	}
	return img
}
