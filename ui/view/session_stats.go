package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows run durations and frame counters.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetStats(text string)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	statsLbl   *LabelWidget
}

// NewSessionStats places the run and total labels at (row, startCol) and
// (row, startCol+1), and the counters line below them.
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl: Label(Width(14), Txt("Run: 00:00")),
		totalLbl:   Label(Width(14), Txt("Total: 00:00")),
		statsLbl:   Label(Anchor("w"), Txt("Frames 0")),
	}
	Grid(s.sessionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.statsLbl, Row(row+1), Column(startCol), Columnspan(3), Sticky("w"), Padx("0.2m"))
	return s
}

func mmss(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Run: " + mmss(d)))
}

func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + mmss(d)))
}

func (s *sessionStats) SetStats(text string) {
	if s == nil || s.statsLbl == nil {
		return
	}
	s.statsLbl.Configure(Txt(text))
}
