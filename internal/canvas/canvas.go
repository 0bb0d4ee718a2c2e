// Package canvas implements the RGBA pixel buffer the renderer blits into.
//
// It keeps the familiar Pix/Stride/Rect shape and image.Image method set
// of a packed-pixel bitmap, widened to 8 bits per channel because outfit
// tinting (palette index -> independent R/G/B layers) needs more
// precision than a 16-bit format can hold.
package canvas

import (
	"image"
	"image/color"
)

// RGBA is an in-memory image whose pixels are tightly packed (R,G,B,A)
// bytes, aliasable by blit routines without going through color.Color
// boxing on the hot path.
type RGBA struct {
	Pix    []byte          // 4 bytes per pixel: R,G,B,A
	Stride int             // bytes between vertically adjacent pixels
	Rect   image.Rectangle // image bounds
}

// New returns a new RGBA canvas with the given bounds, fully transparent.
func New(r image.Rectangle) *RGBA {
	w, h := r.Dx(), r.Dy()
	return &RGBA{
		Pix:    make([]byte, w*h*4),
		Stride: w * 4,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (c *RGBA) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (c *RGBA) Bounds() image.Rectangle { return c.Rect }

// PixOffset returns the index into Pix of the first byte of pixel (x, y).
func (c *RGBA) PixOffset(x, y int) int {
	return (y-c.Rect.Min.Y)*c.Stride + (x-c.Rect.Min.X)*4
}

// At implements image.Image.
func (c *RGBA) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return color.RGBA{}
	}
	i := c.PixOffset(x, y)
	p := c.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set implements the draw.Image interface.
func (c *RGBA) Set(x, y int, col color.Color) {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return
	}
	r, g, b, a := col.RGBA()
	i := c.PixOffset(x, y)
	p := c.Pix[i : i+4 : i+4]
	p[0] = byte(r >> 8)
	p[1] = byte(g >> 8)
	p[2] = byte(b >> 8)
	p[3] = byte(a >> 8)
}

// SetRGBA is the allocation-free fast path for opaque blits.
func (c *RGBA) SetRGBA(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return
	}
	i := c.PixOffset(x, y)
	p := c.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
}

// Blend alpha-composites src over the pixel at (x, y) using src's alpha
// channel (straight, not premultiplied). Used for sprite blitting where the
// transparent key has already been resolved to alpha=0.
func (c *RGBA) Blend(x, y int, src color.RGBA) {
	if src.A == 0 {
		return
	}
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return
	}
	if src.A == 0xFF {
		c.SetRGBA(x, y, src)
		return
	}
	i := c.PixOffset(x, y)
	p := c.Pix[i : i+4 : i+4]
	a := uint32(src.A)
	inv := 255 - a
	p[0] = byte((uint32(src.R)*a + uint32(p[0])*inv) / 255)
	p[1] = byte((uint32(src.G)*a + uint32(p[1])*inv) / 255)
	p[2] = byte((uint32(src.B)*a + uint32(p[2])*inv) / 255)
	p[3] = byte((a*255 + uint32(p[3])*inv) / 255)
}

// SubImage returns an RGBA sharing pixels with c, restricted to r.
func (c *RGBA) SubImage(r image.Rectangle) *RGBA {
	r = r.Intersect(c.Rect)
	if r.Empty() {
		return &RGBA{}
	}
	i := c.PixOffset(r.Min.X, r.Min.Y)
	return &RGBA{
		Pix:    c.Pix[i:],
		Stride: c.Stride,
		Rect:   r,
	}
}

// Fill sets every pixel in c to col.
func (c *RGBA) Fill(col color.RGBA) {
	for y := c.Rect.Min.Y; y < c.Rect.Max.Y; y++ {
		for x := c.Rect.Min.X; x < c.Rect.Max.X; x++ {
			c.SetRGBA(x, y, col)
		}
	}
}

// Sprite is a decoded, transparent-keyed tile/object image plus the
// coordinates blitting code needs to place it relative to a tile origin.
type Sprite struct {
	ID     int
	Image  *RGBA
	Width  int
	Height int
}
