package model

import "sync/atomic"

// CaptureModel tracks whether the tracking session is enabled. The zero
// value is disabled and usable. UI callbacks and presenter ticks may race,
// hence the atomic.
type CaptureModel struct{ enabled atomic.Bool }

// Enabled reports whether capture is currently enabled.
func (m *CaptureModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag.
func (m *CaptureModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled.Store(b)
}
