package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/san-kum/mechlab/internal/anim"
)

// Job describes one render of an animation to disk.
type Job struct {
	Format  string
	Path    string
	Width   int
	Height  int
	FPS     int
	Workers int
}

// DefaultPath names the output of a script when none is given. Sequence
// formats get a directory.
func DefaultPath(script, format string) string {
	switch format {
	case "png", "svg":
		return script + "_frames"
	default:
		return script + "." + format
	}
}

// Animation renders every frame of a and writes them in the job's format,
// returning the files written.
func Animation(ctx context.Context, a anim.Animation, job Job) ([]string, error) {
	format := strings.ToLower(job.Format)
	path := job.Path
	if path == "" {
		path = DefaultPath(a.Name(), format)
	}

	if format == "svg" {
		scenes := anim.Scenes(a)
		if len(scenes) == 1 && filepath.Ext(path) == ".svg" {
			return []string{path}, SVG(path, scenes[0], job.Width, job.Height)
		}
		return SVGSequence(path, a.Name(), scenes, job.Width, job.Height)
	}

	switch format {
	case "gif", "avi", "png":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, job.Format)
	}

	frames, err := anim.RenderFrames(ctx, a, job.Width, job.Height, job.Workers)
	if err != nil {
		return nil, err
	}

	switch format {
	case "gif":
		return []string{path}, GIF(path, frames, gifDelay(job.FPS))
	case "avi":
		return []string{path}, AVI(path, frames, job.FPS)
	default:
		if len(frames) == 1 && filepath.Ext(path) == ".png" {
			return []string{path}, PNG(path, frames[0])
		}
		return PNGSequence(path, a.Name(), frames)
	}
}

func gifDelay(fps int) int {
	if fps <= 0 {
		return 5
	}
	return max(1, 100/fps)
}
