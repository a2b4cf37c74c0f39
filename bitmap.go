package msdf

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
)

// Bitmap is a row-major float32 RGB image holding normalized distances.
// Values are nominally in [0, 1] with 0.5 on the outline; values outside
// that band are kept.
type Bitmap struct {
	// Pix holds 3 floats per pixel, R G B, row by row.
	Pix []float32

	Width  int
	Height int
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrBitmapSize)
	}
	return &Bitmap{
		Pix:    make([]float32, width*height*3),
		Width:  width,
		Height: height,
	}, nil
}

// PixOffset returns the index of the first channel of pixel (x, y).
func (b *Bitmap) PixOffset(x, y int) int {
	return (y*b.Width + x) * 3
}

// At returns the three channels of pixel (x, y).
func (b *Bitmap) At(x, y int) [3]float32 {
	i := b.PixOffset(x, y)
	return [3]float32{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}
}

// Set stores the three channels of pixel (x, y).
func (b *Bitmap) Set(x, y int, v [3]float32) {
	i := b.PixOffset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = v[0], v[1], v[2]
}

// Median returns the median channel value of pixel (x, y), which is the
// reconstructed single-channel distance.
func (b *Bitmap) Median(x, y int) float32 {
	i := b.PixOffset(x, y)
	return median(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
}

// pixel returns the channel slice of pixel (x, y) without copying.
func (b *Bitmap) pixel(x, y int) []float32 {
	i := b.PixOffset(x, y)
	return b.Pix[i : i+3 : i+3]
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{Pix: make([]float32, len(b.Pix)), Width: b.Width, Height: b.Height}
	copy(c.Pix, b.Pix)
	return c
}

// toByte quantizes a normalized value, clamping to [0, 255].
func toByte(v float32) uint8 {
	f := math.Round(float64(v) * 255)
	if !(f > 0) {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}

// ToNRGBA quantizes the bitmap to an opaque 8-bit image.
func (b *Bitmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		for x := range b.Width {
			p := b.pixel(x, y)
			o := img.PixOffset(x, y)
			img.Pix[o] = toByte(p[0])
			img.Pix[o+1] = toByte(p[1])
			img.Pix[o+2] = toByte(p[2])
			img.Pix[o+3] = 255
		}
	}
	return img
}

// WritePNG encodes the quantized bitmap as PNG.
func (b *Bitmap) WritePNG(w io.Writer) error {
	return png.Encode(w, b.ToNRGBA())
}

// SavePNG writes the quantized bitmap to a PNG file.
func (b *Bitmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// sample bilinearly interpolates the bitmap at pixel-space position (x, y),
// where pixel centers lie at half-integer coordinates.
func (b *Bitmap) sample(x, y float64) [3]float32 {
	x -= 0.5
	y -= 0.5
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	clampX := func(v int) int { return min(max(v, 0), b.Width-1) }
	clampY := func(v int) int { return min(max(v, 0), b.Height-1) }
	x1, y1 := clampX(x0+1), clampY(y0+1)
	x0, y0 = clampX(x0), clampY(y0)

	var out [3]float32
	for c := range out {
		top := mix(b.Pix[b.PixOffset(x0, y0)+c], b.Pix[b.PixOffset(x1, y0)+c], fx)
		bottom := mix(b.Pix[b.PixOffset(x0, y1)+c], b.Pix[b.PixOffset(x1, y1)+c], fx)
		out[c] = mix(top, bottom, fy)
	}
	return out
}

// Render reconstructs the shape as an anti-aliased coverage mask of the
// given size, the way a shader samples an MSDF texture. pxRange is the
// distance range expressed in bitmap pixels (Range times Scale).
func (b *Bitmap) Render(width, height int, pxRange float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	sx := float64(b.Width) / float64(width)
	sy := float64(b.Height) / float64(height)
	screenRange := pxRange / sx

	for y := range height {
		for x := range width {
			v := b.sample((float64(x)+0.5)*sx, (float64(y)+0.5)*sy)
			d := float64(median(v[0], v[1], v[2])) - 0.5
			coverage := min(max(screenRange*d+0.5, 0), 1)
			img.Pix[img.PixOffset(x, y)] = uint8(math.Round(coverage * 255))
		}
	}
	return img
}

// Gray returns the median channel as an 8-bit image.
func (b *Bitmap) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		for x := range b.Width {
			img.SetGray(x, y, color.Gray{Y: toByte(b.Median(x, y))})
		}
	}
	return img
}
