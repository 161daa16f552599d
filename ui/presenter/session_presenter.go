package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/lipstick-ar-go/domain/capture"
	"github.com/soocke/lipstick-ar-go/ui/model"
)

// CaptureEnabledModel reports whether capture is enabled.
type CaptureEnabledModel interface{ Enabled() bool }

// StatsSource exposes session counters.
type StatsSource interface{ Stats() capture.SessionStats }

// SessionView displays run durations and session counters.
type SessionView interface {
	SetSession(run, total time.Duration)
	SetStats(text string)
}

// SessionPresenter pushes run durations and frame counters to the view.
type SessionPresenter struct {
	sess  *model.SessionModel
	cap   CaptureEnabledModel
	stats StatsSource
	view  SessionView
}

func NewSessionPresenter(sess *model.SessionModel, cap CaptureEnabledModel, stats StatsSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, cap: cap, stats: stats, view: view}
}

func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.cap == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.cap.Enabled(), now)
	run, total := p.sess.Values()
	p.view.SetSession(run, total)
	if p.stats != nil {
		p.view.SetStats(FormatStats(p.stats.Stats()))
	}
}

// FormatStats renders session counters on one line.
func FormatStats(s capture.SessionStats) string {
	return fmt.Sprintf("Frames %d | updated %d | held %d | %.1f ms/frame",
		s.Frames, s.Accepted, s.Held, s.AvgProcessMicro/1000)
}
