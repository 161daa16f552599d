package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soocke/lipstick-ar-go/config"
	"github.com/soocke/lipstick-ar-go/domain/landmark"
	"github.com/soocke/lipstick-ar-go/domain/lipstick"
)

// fakeGrabber serves white frames until n is reached.
type fakeGrabber struct {
	mu    sync.Mutex
	n     int
	calls int
	err   error
}

func (g *fakeGrabber) Grab(ctx context.Context) (*image.RGBA, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	if g.calls >= g.n {
		return nil, ErrNoFrames
	}
	g.calls++
	img := image.NewRGBA(image.Rect(0, 0, 200, 260))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img, nil
}

func meshFace(dx float64) landmark.Face {
	pts := make([]landmark.Point, 478)
	for i := range pts {
		pts[i] = landmark.Point{X: 100 + float64(i%20)*3 + dx, Y: 200 + float64(i/20)*2}
	}
	return landmark.FromPoints(pts)
}

func staticDetector(faces ...landmark.Face) landmark.Detector {
	return landmark.DetectorFunc(func(ctx context.Context, _ *image.RGBA) ([]landmark.Face, error) {
		return faces, nil
	})
}

func fastConfig() *config.Config {
	c := config.DefaultConfig()
	c.TargetFPS = 120
	c.Alpha = 1
	return c
}

func TestSession_StepDrawsOverlay(t *testing.T) {
	s := NewSession(fastConfig(), &fakeGrabber{n: 1}, staticDetector(meshFace(0)), nil)
	snap, err := s.Step(context.Background())
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !snap.Result.Rendered || !snap.Result.Accepted || snap.Sequence != 1 {
		t.Fatalf("unexpected result %+v seq=%d", snap.Result, snap.Sequence)
	}
	touched := false
	for y := 0; y < 260 && !touched; y++ {
		for x := 0; x < 200; x++ {
			if snap.Image.RGBAAt(x, y).G != 255 {
				touched = true
				break
			}
		}
	}
	if !touched {
		t.Fatalf("overlay not drawn")
	}
	if got := s.LatestFrame().Sequence; got != 1 {
		t.Fatalf("latest frame not published, seq=%d", got)
	}
}

func TestSession_HoldCountedOnSmallMotion(t *testing.T) {
	var mu sync.Mutex
	dx := 0.0
	det := landmark.DetectorFunc(func(ctx context.Context, _ *image.RGBA) ([]landmark.Face, error) {
		mu.Lock()
		defer mu.Unlock()
		f := meshFace(dx)
		dx += 0.2
		return []landmark.Face{f}, nil
	})
	s := NewSession(fastConfig(), &fakeGrabber{n: 3}, det, nil)
	for i := 0; i < 3; i++ {
		if _, err := s.Step(context.Background()); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	st := s.Stats()
	if st.Frames != 3 || st.Accepted != 1 || st.Held != 2 || st.Faces != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestSession_DetectorErrorPublishesRawFrame(t *testing.T) {
	boom := errors.New("model lost")
	det := landmark.DetectorFunc(func(ctx context.Context, _ *image.RGBA) ([]landmark.Face, error) {
		return nil, boom
	})
	s := NewSession(fastConfig(), &fakeGrabber{n: 1}, det, nil)
	snap, err := s.Step(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected detector error, got %v", err)
	}
	if snap.Image == nil || snap.Result.Rendered {
		t.Fatalf("raw frame should be published without overlay")
	}
	if s.Stats().DetectorErrors != 1 {
		t.Fatalf("detector error not counted")
	}
}

func TestSession_NoDetector(t *testing.T) {
	s := NewSession(nil, &fakeGrabber{n: 1}, nil, nil)
	if _, err := s.Step(context.Background()); !errors.Is(err, ErrNoDetector) {
		t.Fatalf("expected ErrNoDetector, got %v", err)
	}
}

func TestSession_SetDetectorResetsRetained(t *testing.T) {
	s := NewSession(fastConfig(), &fakeGrabber{n: 2}, staticDetector(meshFace(0)), nil)
	if _, err := s.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Processor().Filter().Retained() == nil {
		t.Fatalf("expected retained set after first frame")
	}
	s.SetDetector(staticDetector(meshFace(0.1)))
	if s.Processor().Filter().Retained() != nil {
		t.Fatalf("detector swap should reset the filter")
	}
	snap, err := s.Step(context.Background())
	if err != nil || !snap.Result.Accepted {
		t.Fatalf("first frame after swap must be accepted: %+v err=%v", snap.Result, err)
	}
}

func TestSession_RunStopsAtEndOfFrames(t *testing.T) {
	g := &fakeGrabber{n: 4}
	s := NewSession(fastConfig(), g, staticDetector(meshFace(0)), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := s.Stats().Frames; got != 4 {
		t.Fatalf("expected 4 frames, got %d", got)
	}
}

func TestSession_StartStop(t *testing.T) {
	g := &fakeGrabber{n: 1 << 30}
	s := NewSession(fastConfig(), g, staticDetector(), nil)
	s.Start()
	s.Start()
	if !s.Running() {
		t.Fatalf("session should be running")
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Stats().Frames == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	if s.Running() {
		t.Fatalf("session should be stopped")
	}
	if s.Stats().Frames == 0 {
		t.Fatalf("no frames processed while running")
	}
	if err := s.Wait(); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
}

func TestSession_GrabErrorCountsSkip(t *testing.T) {
	s := NewSession(fastConfig(), &fakeGrabber{err: errors.New("no display")}, staticDetector(), nil)
	if _, err := s.Step(context.Background()); err == nil {
		t.Fatalf("expected grab error")
	}
	if s.Stats().Skipped != 1 {
		t.Fatalf("skip not counted")
	}
}

func TestSession_SetConfigClones(t *testing.T) {
	s := NewSession(nil, &fakeGrabber{}, staticDetector(), nil)
	c := config.DefaultConfig()
	c.Color = config.DeliciousPlum
	s.SetConfig(c)
	c.Color = config.SinfulCherry
	if s.Config().Color != config.DeliciousPlum {
		t.Fatalf("session config aliases caller's value")
	}
	if s.ID() == "" {
		t.Fatalf("session id missing")
	}
}

func writeFrame(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := imaging.New(8, 6, c)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

func TestDirGrabber_OrderAndEnd(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, filepath.Join(dir, "frame_002.png"), color.NRGBA{G: 255, A: 255})
	writeFrame(t, filepath.Join(dir, "frame_001.png"), color.NRGBA{R: 255, A: 255})
	writeFrame(t, filepath.Join(dir, "frame_003.jpg"), color.NRGBA{B: 255, A: 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := NewDirGrabber(dir)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", g.Len())
	}
	ctx := context.Background()
	first, err := g.Grab(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c := first.RGBAAt(1, 1); c.R != 255 || c.G != 0 {
		t.Fatalf("frames out of order, first pixel %+v", c)
	}
	if first.Bounds() != image.Rect(0, 0, 8, 6) {
		t.Fatalf("unexpected bounds %v", first.Bounds())
	}
	if filepath.Base(g.Current()) != "frame_001.png" {
		t.Fatalf("unexpected current %q", g.Current())
	}
	for i := 0; i < 2; i++ {
		if _, err := g.Grab(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.Grab(ctx); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got %v", err)
	}
	g.Rewind()
	if _, err := g.Grab(ctx); err != nil {
		t.Fatalf("grab after rewind: %v", err)
	}
}

func TestDirGrabber_Loop(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, filepath.Join(dir, "a.png"), color.NRGBA{A: 255})
	g, err := NewDirGrabber(dir)
	if err != nil {
		t.Fatal(err)
	}
	g.Loop = true
	for i := 0; i < 3; i++ {
		if _, err := g.Grab(context.Background()); err != nil {
			t.Fatalf("grab %d: %v", i, err)
		}
	}
}

func TestDirGrabber_MissingDir(t *testing.T) {
	if _, err := NewDirGrabber(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

func TestFramePool_Reuse(t *testing.T) {
	f := acquireFrame(image.Rect(0, 0, 4, 4))
	if len(f.Pix) != 64 || f.Stride != 16 {
		t.Fatalf("unexpected frame layout len=%d stride=%d", len(f.Pix), f.Stride)
	}
	RecycleFrame(f)
	g := acquireFrame(image.Rect(0, 0, 2, 2))
	if len(g.Pix) != 16 || g.Stride != 8 {
		t.Fatalf("unexpected reused layout len=%d stride=%d", len(g.Pix), g.Stride)
	}
	RecycleFrame(nil)
}

func TestSession_DiscardsDetectionFinishedAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	det := landmark.DetectorFunc(func(context.Context, *image.RGBA) ([]landmark.Face, error) {
		cancel()
		return []landmark.Face{meshFace(0)}, nil
	})
	s := NewSession(fastConfig(), &fakeGrabber{n: 1}, det, nil)
	_, err := s.Step(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.Processor().Filter().Retained() != nil {
		t.Fatalf("late detection reached the motion filter")
	}
	if s.LatestFrame().Image != nil || s.Stats().Frames != 0 {
		t.Fatalf("late detection was published: %+v", s.Stats())
	}
}

func TestSession_SetConfigRejectsInvalid(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewSession(fastConfig(), &fakeGrabber{}, staticDetector(), logger)
	bad := fastConfig()
	bad.Color = "Nope"
	s.SetConfig(bad)
	if s.Config().Color != fastConfig().Color {
		t.Fatalf("invalid config was installed: %q", s.Config().Color)
	}
	if !strings.Contains(buf.String(), "session config rejected") {
		t.Fatalf("rejection not logged:\n%s", buf.String())
	}
}

func TestSession_MaxFacesWarnedOncePerConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cfg := fastConfig()
	cfg.MaxFaces = 2
	s := NewSession(fastConfig(), &fakeGrabber{n: 5}, staticDetector(meshFace(0)), logger)
	s.SetConfig(cfg)
	for i := 0; i < 5; i++ {
		snap, err := s.Step(context.Background())
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if !errors.Is(snap.Result.Warning, lipstick.ErrMultipleFaces) {
			t.Fatalf("step %d: frame warning missing", i)
		}
	}
	if n := strings.Count(buf.String(), "single-face tracking"); n != 1 {
		t.Fatalf("expected one max_faces warning, got %d:\n%s", n, buf.String())
	}
}

func TestSession_ConcurrentStartStop(t *testing.T) {
	s := NewSession(fastConfig(), &fakeGrabber{n: 1 << 30}, staticDetector(), nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.Start()
			} else {
				s.Stop()
			}
		}(i)
	}
	wg.Wait()
	s.Stop()
	if s.Running() {
		t.Fatalf("session still running after Stop")
	}
	if err := s.Wait(); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
}
