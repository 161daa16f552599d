package model

import "time"

// SessionModel tracks how long the overlay has been live: the current run
// and the total across runs. Presenters poll Values. The zero value is ready
// to use.
type SessionModel struct {
	active    bool
	startedAt time.Time
	current   time.Duration
	finished  time.Duration
	runs      int
}

func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the model with the live flag observed at now.
func (m *SessionModel) OnTick(live bool, now time.Time) {
	if m == nil {
		return
	}
	switch {
	case live && !m.active:
		m.active = true
		m.startedAt = now
		m.current = 0
		m.runs++
	case live:
		m.current = now.Sub(m.startedAt)
	case m.active:
		m.current = now.Sub(m.startedAt)
		m.finished += m.current
		m.active = false
	}
}

// Values returns the current (or last) run duration and the total, which
// includes the ongoing run.
func (m *SessionModel) Values() (run, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	total = m.finished
	if m.active {
		total += m.current
	}
	return m.current, total
}

// Runs counts how many times the overlay was started.
func (m *SessionModel) Runs() int {
	if m == nil {
		return 0
	}
	return m.runs
}
