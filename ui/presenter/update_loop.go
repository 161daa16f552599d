package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It ticks the sub-presenters and invokes a scheduler callback. The zero
// value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Tracking *TrackingPresenter
	Preview  *PreviewPresenter
	Schedule func()
}

func NewLoop(sess *SessionPresenter, tracking *TrackingPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Tracking: tracking, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Preview first so the state label reflects the frame just shown.
	l.Preview.ProcessFrame()
	l.Tracking.Tick(now)
	l.Session.Tick(now)
	if l.Schedule != nil {
		l.Schedule()
	}
}
