package render

import (
	"image"
	"runtime"
	"sync"

	"golang.org/x/image/draw"

	"github.com/kelindar/tibiavcr/internal/canvas"
)

// Rescale resizes src into a new canvas of the given size using bilinear
// (four-tap) filtering, parallelized across output rows since the
// transform has no shared mutable state between rows.
func Rescale(src *canvas.RGBA, width, height int) *canvas.RGBA {
	dst := canvas.New(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	rowsPerWorker := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > height {
			y1 = height
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			strip := image.Rect(0, y0, width, y1)
			draw.BiLinear.Scale(dst.SubImage(strip), dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		}(y0, y1)
	}
	wg.Wait()

	return dst
}
