package capture

import (
	"context"
	"image"
	"sync"

	"github.com/vova616/screenshot"
)

// ScreenGrabber captures the primary screen, or the selection rectangle
// when one is set.
type ScreenGrabber struct {
	mu  sync.RWMutex
	sel *image.Rectangle
}

// NewScreenGrabber returns a grabber for the full screen.
func NewScreenGrabber() *ScreenGrabber { return &ScreenGrabber{} }

// SetSelection limits capture to r. A nil or empty rectangle restores
// full-screen capture.
func (g *ScreenGrabber) SetSelection(r *image.Rectangle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r == nil || r.Empty() {
		g.sel = nil
		return
	}
	cp := *r
	g.sel = &cp
}

// Selection returns the active selection, or nil for full screen.
func (g *ScreenGrabber) Selection() *image.Rectangle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.sel == nil {
		return nil
	}
	cp := *g.sel
	return &cp
}

func (g *ScreenGrabber) Grab(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sel := g.Selection(); sel != nil {
		return screenshot.CaptureRect(*sel)
	}
	return screenshot.CaptureScreen()
}

var _ Grabber = (*ScreenGrabber)(nil)
