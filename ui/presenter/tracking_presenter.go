package presenter

import "time"

// TrackingSource renders the current tracking state as a label.
type TrackingSource interface{ Label() string }

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// TrackingPresenter reflects the tracking model onto the state label,
// touching the widget only when the text changes.
type TrackingPresenter struct {
	src    TrackingSource
	view   StateView
	latest string
}

func NewTrackingPresenter(src TrackingSource, view StateView) *TrackingPresenter {
	return &TrackingPresenter{src: src, view: view}
}

func (p *TrackingPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	if label := p.src.Label(); label != p.latest {
		p.latest = label
		p.view.SetStateLabel(label)
	}
}
