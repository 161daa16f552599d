package presenter

import (
	"image"

	"github.com/soocke/lipstick-ar-go/domain/capture"
	"github.com/soocke/lipstick-ar-go/domain/lipstick"
)

// PreviewView shows the rendered frame.
type PreviewView interface {
	UpdateCapture(img image.Image)
}

// FrameObserver receives the outcome of each new frame.
type FrameObserver interface {
	Observe(res lipstick.FrameResult, err error)
}

// PreviewPresenter pulls the newest processed frame from the session and
// hands it to the view and the tracking model. Frames already shown are
// skipped by sequence number.
type PreviewPresenter struct {
	enabled  func() bool
	source   capture.FrameSource
	observer FrameObserver
	view     PreviewView
	lastSeq  uint64
}

func NewPreviewPresenter(enabled func() bool, source capture.FrameSource, observer FrameObserver, view PreviewView) *PreviewPresenter {
	return &PreviewPresenter{enabled: enabled, source: source, observer: observer, view: view}
}

// ProcessFrame reports whether a new frame was shown.
func (p *PreviewPresenter) ProcessFrame() bool {
	if p == nil || p.enabled == nil || p.source == nil || p.view == nil {
		return false
	}
	if !p.enabled() {
		return false
	}
	snap := p.source.LatestFrame()
	if snap.Image == nil || snap.Sequence == p.lastSeq {
		return false
	}
	p.lastSeq = snap.Sequence
	p.view.UpdateCapture(snap.Image)
	if p.observer != nil {
		p.observer.Observe(snap.Result, snap.Err)
	}
	return true
}
