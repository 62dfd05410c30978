package paintd

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// Pixmap represents a rectangular pixel buffer.
// Pixels are stored as non-premultiplied RGBA, 4 bytes per pixel.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new fully transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Size returns the pixmap dimensions.
func (p *Pixmap) Size() Size {
	return Size{Width: p.width, Height: p.height}
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel. Out-of-bounds reads return
// transparent black.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// ReadRegion copies a rectangular region into a new pixmap. The region is
// clamped to the pixmap bounds; the result keeps the requested size with
// out-of-bounds pixels left transparent.
func (p *Pixmap) ReadRegion(r image.Rectangle) *Pixmap {
	out := NewPixmap(r.Dx(), r.Dy())
	clamped := r.Intersect(image.Rect(0, 0, p.width, p.height))
	for y := clamped.Min.Y; y < clamped.Max.Y; y++ {
		srcOff := (y*p.width + clamped.Min.X) * 4
		dstOff := ((y-r.Min.Y)*out.width + (clamped.Min.X - r.Min.X)) * 4
		copy(out.data[dstOff:dstOff+clamped.Dx()*4], p.data[srcOff:srcOff+clamped.Dx()*4])
	}
	return out
}

// WriteRegion overwrites the destination rectangle with the source pixmap's
// raw pixels. No blending, transform, or clipping is applied. The write is
// clamped to the pixmap bounds.
func (p *Pixmap) WriteRegion(src *Pixmap, r image.Rectangle) {
	clamped := r.Intersect(image.Rect(0, 0, p.width, p.height))
	for y := clamped.Min.Y; y < clamped.Max.Y; y++ {
		sy := y - r.Min.Y
		if sy < 0 || sy >= src.height {
			continue
		}
		sx := clamped.Min.X - r.Min.X
		n := clamped.Dx()
		if sx+n > src.width {
			n = src.width - sx
		}
		if n <= 0 {
			continue
		}
		srcOff := (sy*src.width + sx) * 4
		dstOff := (y*p.width + clamped.Min.X) * 4
		copy(p.data[dstOff:dstOff+n*4], src.data[srcOff:srcOff+n*4])
	}
}

// ToImage converts the pixmap to an image.NRGBA sharing no storage.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			pm.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return pm
}

// Clone creates a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := NewPixmap(p.width, p.height)
	copy(out.data, p.data)
	return out
}

// EncodePNG writes the pixmap to w in PNG format.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
