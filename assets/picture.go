package assets

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kelindar/tibiavcr/internal/canvas"
	"github.com/kelindar/tibiavcr/version"
)

// Picture decodes one full picture-atlas image (loading screen backgrounds,
// client chrome) identified by its version-independent logical slot.
// Pictures are themselves grids of 32x32 sprite blocks, each addressed by
// an offset into the picture file (mirrors pictures_ReadPicture: a
// width x height grid of u32 sprite offsets, each offset pointing at a
// u16-length-prefixed sprite block).
func (s *Store) Picture(logical version.PictureLogical) (*canvas.RGBA, error) {
	index, ok := s.Profile.PictureIndex(logical)
	if !ok {
		return nil, fmt.Errorf("assets: picture %v not available in this version", logical)
	}

	file, err := s.loadPictures()
	if err != nil {
		return nil, err
	}

	raw, err := file.At(index)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("assets: picture %v has no data", logical)
	}

	if len(raw) < 5 {
		return nil, fmt.Errorf("%w: picture header truncated", ErrInvalidSprite)
	}

	width := int(raw[0])
	height := int(raw[1])
	// raw[2:5] is a 3-byte color key, unused by the RGBA canvas since
	// transparency is carried by the sprite's own alpha channel.

	out := canvas.New(image.Rect(0, 0, width*spriteSize, height*spriteSize))

	depth := spriteDepthRGB
	if s.Profile.Features.SpriteIndexU32 {
		depth = spriteDepthRGBA
	}

	pos := 5
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pos+4 > len(raw) {
				return nil, fmt.Errorf("%w: picture grid truncated", ErrInvalidSprite)
			}
			blockOffset := int(le32(raw[pos : pos+4]))
			pos += 4

			if blockOffset <= 0 || blockOffset+2 > len(raw) {
				continue
			}
			blockLen := int(raw[blockOffset]) | int(raw[blockOffset+1])<<8
			start := blockOffset + 2
			if blockLen == 0 || start+blockLen > len(raw) {
				continue
			}

			block, err := decodeSprite(raw[start:start+blockLen], spriteSize, spriteSize, depth)
			if err != nil {
				return nil, fmt.Errorf("assets: picture %v block (%d,%d): %w", logical, x, y, err)
			}
			blitInto(out, block, x*spriteSize, y*spriteSize)
		}
	}

	return out, nil
}

// blitInto copies every pixel of src into dst at the given top-left offset.
func blitInto(dst, src *canvas.RGBA, ox, oy int) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.At(x, y)
			r, g, bl, a := c.RGBA()
			dst.SetRGBA(ox+x, oy+y, color.RGBA{R: byte(r >> 8), G: byte(g >> 8), B: byte(bl >> 8), A: byte(a >> 8)})
		}
	}
}
