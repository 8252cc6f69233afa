package anim

import (
	"context"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/mechlab/internal/logger"
	"github.com/san-kum/mechlab/internal/render"
)

// RenderFrames rasterises every frame of a on at most workers goroutines,
// one per CPU when workers is zero. The images come back in frame order.
func RenderFrames(ctx context.Context, a Animation, w, h, workers int) ([]*image.RGBA, error) {
	n := a.Frames()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	start := time.Now()

	out := make([]*image.RGBA, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = render.Raster(a.Frame(i), w, h)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Script(a.Name()).Debug("frames.rendered",
		"frames", n, "workers", workers,
		"size", [2]int{w, h}, "elapsed", time.Since(start).String())
	return out, nil
}

// Scenes builds every frame without rasterising.
func Scenes(a Animation) []*render.Scene {
	out := make([]*render.Scene, a.Frames())
	for i := range out {
		out[i] = a.Frame(i)
	}
	return out
}
