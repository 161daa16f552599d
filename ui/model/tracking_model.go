package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/soocke/lipstick-ar-go/domain/lipstick"
)

// TrackingState summarises what the overlay did on the latest frame.
type TrackingState int

const (
	TrackingIdle TrackingState = iota
	TrackingNoFace
	TrackingAccepted
	TrackingHolding
	TrackingError
)

func (s TrackingState) String() string {
	switch s {
	case TrackingIdle:
		return "idle"
	case TrackingNoFace:
		return "no face"
	case TrackingAccepted:
		return "tracking"
	case TrackingHolding:
		return "holding"
	case TrackingError:
		return "error"
	}
	return "unknown"
}

// TrackingModel keeps the latest frame outcome for display. Updated and read
// on the UI thread only.
type TrackingModel struct {
	state      TrackingState
	offset     float64
	multiFaces bool
	err        error
}

func NewTrackingModel() *TrackingModel { return &TrackingModel{} }

// Observe records one processed frame.
func (m *TrackingModel) Observe(res lipstick.FrameResult, err error) {
	if m == nil {
		return
	}
	m.err = err
	m.offset = res.Offset
	m.multiFaces = errors.Is(res.Warning, lipstick.ErrMultipleFaces)
	switch {
	case err != nil:
		m.state = TrackingError
	case res.Faces == 0 || (!res.Rendered && !res.Accepted):
		m.state = TrackingNoFace
	case res.Accepted:
		m.state = TrackingAccepted
	default:
		m.state = TrackingHolding
	}
}

// Reset returns the model to idle.
func (m *TrackingModel) Reset() {
	if m == nil {
		return
	}
	*m = TrackingModel{}
}

func (m *TrackingModel) State() TrackingState {
	if m == nil {
		return TrackingIdle
	}
	return m.state
}

// Label renders the model for the state label.
func (m *TrackingModel) Label() string {
	if m == nil {
		return "State: idle"
	}
	s := "State: " + m.state.String()
	switch m.state {
	case TrackingAccepted, TrackingHolding:
		if !math.IsInf(m.offset, 0) {
			s += fmt.Sprintf(" (offset %.2f px)", m.offset)
		}
	case TrackingError:
		s += ": " + m.err.Error()
	}
	if m.multiFaces {
		s += " [multiple faces]"
	}
	return s
}
