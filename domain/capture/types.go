package capture

import (
	"context"
	"image"
	"time"

	"github.com/soocke/lipstick-ar-go/domain/lipstick"
)

// Grabber produces video frames. Implementations own the returned image
// until it is handed to the caller; callers may draw on it.
type Grabber interface {
	Grab(ctx context.Context) (*image.RGBA, error)
}

// FrameSource provides read-only access to processed frames.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Running() bool
}

// FrameSnapshot carries the latest processed frame (overlay already drawn)
// and what the pipeline did with it.
type FrameSnapshot struct {
	Image      *image.RGBA
	Result     lipstick.FrameResult
	Err        error
	CapturedAt time.Time
	Latency    time.Duration
	Sequence   uint64
}

// SessionStats summarises session loop behaviour for instrumentation.
type SessionStats struct {
	Frames          uint64
	Faces           uint64
	Accepted        uint64
	Held            uint64
	Skipped         uint64
	DetectorErrors  uint64
	AvgProcess      time.Duration
	AvgProcessMicro float64
	LastFrame       time.Time
	LatestFrameAge  time.Duration
	Sequence        uint64
}
