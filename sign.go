package msdf

import (
	"github.com/gogpu/msdf/internal/parallel"
)

// CorrectSign makes the sign of every pixel agree with the fill of shape
// under rule. Pixels whose median lies on the wrong side of 0.5 have all
// channels inverted. Pixels with a median of exactly 0.5 follow the
// majority of their four neighbours.
func CorrectSign(bm *Bitmap, shape *Shape, proj Projection, rule FillRule, workers int) {
	w, h := bm.Width, bm.Height
	match := make([]int8, w*h)
	ambiguous := make([]bool, h)

	parallel.Rows(h, workers, func(band parallel.Band) {
		var scanline Scanline
		for y := band.Start; y < band.End; y++ {
			row := y
			if shape.InverseYAxis {
				row = h - 1 - y
			}
			scanline.Reset(shape, proj.Unproject(Point{0, float64(y) + 0.5}).Y)
			for x := range w {
				fill := scanline.Filled(proj.Unproject(Point{float64(x) + 0.5, 0}).X, rule)
				px := bm.pixel(x, row)
				sd := median(px[0], px[1], px[2])
				switch {
				case sd == 0.5:
					ambiguous[row] = true
				case (sd > 0.5) != fill:
					px[0], px[1], px[2] = 1-px[0], 1-px[1], 1-px[2]
					match[row*w+x] = -1
				default:
					match[row*w+x] = 1
				}
			}
		}
	})

	for row := range h {
		if !ambiguous[row] {
			continue
		}
		for x := range w {
			if match[row*w+x] != 0 {
				continue
			}
			neighbours := 0
			if x > 0 {
				neighbours += int(match[row*w+x-1])
			}
			if x < w-1 {
				neighbours += int(match[row*w+x+1])
			}
			if row > 0 {
				neighbours += int(match[(row-1)*w+x])
			}
			if row < h-1 {
				neighbours += int(match[(row+1)*w+x])
			}
			if neighbours < 0 {
				px := bm.pixel(x, row)
				px[0], px[1], px[2] = 1-px[0], 1-px[1], 1-px[2]
			}
		}
	}
}
