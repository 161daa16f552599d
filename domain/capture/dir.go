package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNoFrames is returned by DirGrabber once every frame has been served.
var ErrNoFrames = errors.New("capture: no more frames")

var frameExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
}

// DirGrabber serves the image files of a directory in lexical order, one per
// Grab. With Loop set it wraps around instead of returning ErrNoFrames.
type DirGrabber struct {
	Loop bool

	mu    sync.Mutex
	files []string
	next  int
	last  string
}

// NewDirGrabber lists dir's image files. Subdirectories and files with other
// extensions are ignored.
func NewDirGrabber(dir string) (*DirGrabber, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return &DirGrabber{files: files}, nil
}

// Len is the number of frames in the directory.
func (g *DirGrabber) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.files)
}

// Current returns the path of the frame most recently served.
func (g *DirGrabber) Current() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

func (g *DirGrabber) Grab(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	if g.next >= len(g.files) {
		if !g.Loop || len(g.files) == 0 {
			g.mu.Unlock()
			return nil, ErrNoFrames
		}
		g.next = 0
	}
	path := g.files[g.next]
	g.next++
	g.last = path
	g.mu.Unlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return toRGBA(img), nil
}

// Rewind restarts from the first frame.
func (g *DirGrabber) Rewind() {
	g.mu.Lock()
	g.next = 0
	g.last = ""
	g.mu.Unlock()
}

var _ Grabber = (*DirGrabber)(nil)
