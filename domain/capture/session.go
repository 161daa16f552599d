package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/soocke/lipstick-ar-go/config"
	"github.com/soocke/lipstick-ar-go/domain/canvas"
	"github.com/soocke/lipstick-ar-go/domain/landmark"
	"github.com/soocke/lipstick-ar-go/domain/lipstick"
)

const sessionStatsLogInterval = 5 * time.Second

// ErrNoDetector is returned by Step when no detector is attached.
var ErrNoDetector = errors.New("capture: no landmark detector")

// Session drives the per-frame pipeline: grab a frame, detect landmarks,
// run the lipstick processor and draw the overlay onto the frame. Step runs
// one frame synchronously; Start runs frames in the background paced at the
// configured target FPS.
type Session struct {
	id      string
	logger  *slog.Logger
	grabber Grabber

	cfg     atomic.Pointer[config.Config]
	limiter *rate.Limiter

	// mu serialises Step so the processor sees frames in order.
	mu        sync.Mutex
	detector  landmark.Detector
	processor *lipstick.Processor

	// runMu guards cancel and done; Stop may be called from any goroutine.
	runMu   sync.Mutex
	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	runErr  atomic.Pointer[error]

	latest         atomic.Pointer[FrameSnapshot]
	frames         atomic.Uint64
	faces          atomic.Uint64
	accepted       atomic.Uint64
	held           atomic.Uint64
	skipped        atomic.Uint64
	detectorErrors atomic.Uint64
	processNanos   atomic.Uint64
	sequence       atomic.Uint64
}

// NewSession returns a stopped session. A nil cfg uses defaults and a nil
// logger disables logging.
func NewSession(cfg *config.Config, grabber Grabber, detector landmark.Detector, logger *slog.Logger) *Session {
	id := uuid.NewString()
	if logger != nil {
		logger = logger.With("session_id", id)
	}
	c := cfg.Clone()
	s := &Session{
		id:        id,
		logger:    logger,
		grabber:   grabber,
		limiter:   rate.NewLimiter(rate.Limit(c.TargetFPS), 1),
		detector:  detector,
		processor: lipstick.NewProcessor(logger),
	}
	s.cfg.Store(c)
	s.checkConfig(c)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Config returns a copy of the active configuration.
func (s *Session) Config() *config.Config { return s.cfg.Load().Clone() }

// SetConfig swaps the configuration used from the next frame on. The frame
// rate limiter follows TargetFPS. An invalid configuration is logged and
// ignored.
func (s *Session) SetConfig(cfg *config.Config) {
	c := cfg.Clone()
	if !s.checkConfig(c) {
		return
	}
	s.cfg.Store(c)
	s.limiter.SetLimit(rate.Limit(c.TargetFPS))
	if s.logger != nil {
		s.logger.Info("session config updated", "color", c.Color, "preset", c.Preset, "target_fps", c.TargetFPS)
	}
}

// checkConfig logs problems with c once, at the time it is installed.
func (s *Session) checkConfig(c *config.Config) bool {
	if err := c.Validate(); err != nil {
		if s.logger != nil {
			s.logger.Error("session config rejected", "error", err)
		}
		return false
	}
	if c.MaxFaces > 1 && s.logger != nil {
		s.logger.Warn("single-face tracking; extra faces are ignored", "max_faces", c.MaxFaces)
	}
	return true
}

// SetDetector replaces the landmark detector. The retained lip shape is
// dropped since the new detector's layout may differ.
func (s *Session) SetDetector(d landmark.Detector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detector = d
	s.processor.Reset()
}

// Processor exposes the session's lipstick processor for inspection.
func (s *Session) Processor() *lipstick.Processor { return s.processor }

// Step grabs, processes and publishes one frame. Grabber errors are
// returned as is (ErrNoFrames signals the end of a finite source). A
// detector error still publishes the raw frame.
func (s *Session) Step(ctx context.Context) (FrameSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detector == nil {
		return FrameSnapshot{}, ErrNoDetector
	}

	img, err := s.grabber.Grab(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoFrames) {
			s.skipped.Add(1)
		}
		return FrameSnapshot{}, err
	}
	if img == nil {
		s.skipped.Add(1)
		return FrameSnapshot{}, errors.New("capture: grabber returned no frame")
	}

	start := time.Now()
	cfg := s.cfg.Load()
	snap := FrameSnapshot{Image: img}

	faces, derr := s.detector.Detect(ctx, img)
	if err := ctx.Err(); err != nil {
		// Late result of a cancelled session: drop it untouched.
		return FrameSnapshot{}, err
	}
	if derr != nil {
		s.detectorErrors.Add(1)
		err = fmt.Errorf("detect landmarks: %w", derr)
	} else {
		snap.Result, err = s.processor.Process(canvas.NewGGSurface(img), faces, cfg)
		s.faces.Add(uint64(len(faces)))
		if snap.Result.Accepted {
			s.accepted.Add(1)
		} else if snap.Result.Rendered {
			s.held.Add(1)
		}
	}

	snap.Latency = time.Since(start)
	snap.CapturedAt = time.Now()
	snap.Sequence = s.sequence.Add(1)
	snap.Err = err
	s.processNanos.Add(uint64(snap.Latency.Nanoseconds()))
	s.frames.Add(1)
	s.latest.Store(&snap)
	return snap, err
}

// Run processes frames until ctx is cancelled or a finite grabber runs out.
// Per-frame errors are logged and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	logTicker := time.NewTicker(sessionStatsLogInterval)
	defer logTicker.Stop()
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		_, err := s.safeStep(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrNoFrames):
			return nil
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrNoDetector):
			return err
		default:
			if s.logger != nil {
				s.logger.Warn("session frame", "error", err)
			}
		}
		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}
	}
}

func (s *Session) safeStep(ctx context.Context) (snap FrameSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame panic: %v", r)
		}
	}()
	return s.Step(ctx)
}

// Start launches Run in the background. It is a no-op when already running.
func (s *Session) Start() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.runErr.Store(nil)
	if s.logger != nil {
		s.logger.Info("session started")
	}
	go func() {
		defer close(done)
		defer s.running.Store(false)
		if err := s.Run(ctx); err != nil {
			s.runErr.Store(&err)
			if s.logger != nil {
				s.logger.Error("session stopped", "error", err)
			}
		}
	}()
}

// Stop cancels the background loop and waits for it to exit.
func (s *Session) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	cancel, done := s.cancel, s.done
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.cancel = nil
	if s.logger != nil {
		s.logger.Info("session stopped", "frames", s.frames.Load())
	}
}

// Wait blocks until the background loop exits and returns its error.
func (s *Session) Wait() error {
	s.runMu.Lock()
	done := s.done
	s.runMu.Unlock()
	if done != nil {
		<-done
	}
	if p := s.runErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Running reports whether the background loop is active.
func (s *Session) Running() bool { return s.running.Load() }

// LatestFrame returns the most recently published frame.
func (s *Session) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *Session) Stats() SessionStats {
	frames := s.frames.Load()
	total := s.processNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if frames > 0 && total > 0 {
		avg = time.Duration(total / frames)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return SessionStats{
		Frames:          frames,
		Faces:           s.faces.Load(),
		Accepted:        s.accepted.Load(),
		Held:            s.held.Load(),
		Skipped:         s.skipped.Load(),
		DetectorErrors:  s.detectorErrors.Load(),
		AvgProcess:      avg,
		AvgProcessMicro: avgMicros,
		LastFrame:       snapshot.CapturedAt,
		LatestFrameAge:  age,
		Sequence:        snapshot.Sequence,
	}
}

func (s *Session) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("session.stats",
		"frames", stats.Frames,
		"accepted", stats.Accepted,
		"held", stats.Held,
		"skipped", stats.Skipped,
		"detector_errors", stats.DetectorErrors,
		"avg_process", stats.AvgProcess,
		"age", stats.LatestFrameAge,
	)
}

var _ FrameSource = (*Session)(nil)
