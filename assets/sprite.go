package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/kelindar/tibiavcr/internal/canvas"
)

// ErrInvalidSprite is returned when sprite data is truncated or malformed.
var ErrInvalidSprite = errors.New("assets: invalid sprite data")

// spriteColorDepth is the number of bytes per colored pixel in the legacy
// (pre-32bpp) sprite encoding: one byte each for R, G, B. Versions that
// store true alpha use a 4-byte depth instead (selected by
// version.FeatureFlags.SpriteIndexU32).
const (
	spriteDepthRGB  = 3
	spriteDepthRGBA = 4
)

// decodeSprite reads a run-length encoded width x height sprite from data.
// The format alternates a count of fully-transparent pixels with a count of
// colored pixels until width*height pixels have been produced, matching the
// skip/paint run pairs read by the original client's sprite decoder.
func decodeSprite(data []byte, width, height, colorDepth int) (*canvas.RGBA, error) {
	img := canvas.New(image.Rect(0, 0, width, height))
	total := width * height
	produced := 0
	pos := 0

	for produced < total {
		if pos+4 > len(data) {
			// Ran out of run headers before filling the image; treat the
			// remainder as transparent rather than failing the whole
			// asset load, since some versions pad short sprite blocks.
			break
		}

		skip := int(data[pos]) | int(data[pos+1])<<8
		count := int(data[pos+2]) | int(data[pos+3])<<8
		pos += 4

		produced += skip
		if produced > total {
			return nil, fmt.Errorf("%w: skip run overruns sprite bounds", ErrInvalidSprite)
		}

		need := count * colorDepth
		if pos+need > len(data) {
			return nil, fmt.Errorf("%w: colored run truncated", ErrInvalidSprite)
		}

		for i := 0; i < count && produced < total; i++ {
			x := produced % width
			y := produced / width
			r := data[pos+i*colorDepth]
			g := data[pos+i*colorDepth+1]
			b := data[pos+i*colorDepth+2]
			a := byte(0xFF)
			if colorDepth == spriteDepthRGBA {
				a = data[pos+i*colorDepth+3]
			}
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
			produced++
		}
		pos += need
	}

	return img, nil
}

// Sprite decodes the 32x32 object sprite with the given id, returning nil
// without error if the id has no associated data (common for sparsely
// populated sprite ranges).
func (s *Store) Sprite(id int) (*canvas.Sprite, error) {
	file, err := s.loadSprites()
	if err != nil {
		return nil, err
	}

	raw, err := file.At(id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	depth := spriteDepthRGB
	if s.Profile.Features.SpriteIndexU32 {
		depth = spriteDepthRGBA
	}

	img, err := decodeSprite(raw, spriteSize, spriteSize, depth)
	if err != nil {
		return nil, fmt.Errorf("assets: sprite %d: %w", id, err)
	}

	return &canvas.Sprite{ID: id, Image: img, Width: spriteSize, Height: spriteSize}, nil
}

const spriteSize = 32
