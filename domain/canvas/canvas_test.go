package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// whiteFrame returns an opaque white RGBA frame.
func whiteFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func fillSquare(s *GGSurface, x0, y0, x1, y1 float64) error {
	s.BeginPath()
	s.MoveTo(x0, y0)
	s.LineTo(x1, y0)
	s.LineTo(x1, y1)
	s.LineTo(x0, y1)
	return s.Fill()
}

func TestGGSurface_FillsInsideOnly(t *testing.T) {
	frame := whiteFrame(40, 40)
	s := NewGGSurface(frame)
	s.SetFillColor(color.NRGBA{R: 170, G: 0, B: 52, A: 255})
	if err := fillSquare(s, 10, 10, 30, 30); err != nil {
		t.Fatalf("fill: %v", err)
	}
	in := frame.RGBAAt(20, 20)
	if in.R != 170 || in.G != 0 || in.B != 52 {
		t.Fatalf("inside pixel not filled: %+v", in)
	}
	for _, p := range []image.Point{{2, 2}, {8, 20}, {35, 35}} {
		if c := frame.RGBAAt(p.X, p.Y); c != (color.RGBA{255, 255, 255, 255}) {
			t.Fatalf("outside pixel %v changed: %+v", p, c)
		}
	}
}

func TestGGSurface_AlphaBlends(t *testing.T) {
	frame := whiteFrame(40, 40)
	s := NewGGSurface(frame)
	s.SetFillColor(color.NRGBA{R: 0, G: 0, B: 0, A: 64})
	if err := fillSquare(s, 10, 10, 30, 30); err != nil {
		t.Fatalf("fill: %v", err)
	}
	c := frame.RGBAAt(20, 20)
	if c.R == 255 || c.R < 150 {
		t.Fatalf("expected partial darkening with alpha 0.25, got %+v", c)
	}
	if c.A != 255 {
		t.Fatalf("opaque frame should stay opaque, got alpha %d", c.A)
	}
}

func TestGGSurface_BlurSoftensEdges(t *testing.T) {
	frame := whiteFrame(40, 40)
	s := NewGGSurface(frame)
	s.SetFillColor(color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	s.SetBlur(3)
	if err := fillSquare(s, 10, 10, 30, 30); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if c := frame.RGBAAt(8, 20); c.R == 255 {
		t.Fatalf("blur should bleed past the edge, got %+v", c)
	}
	if c := frame.RGBAAt(20, 20); c.R > 40 {
		t.Fatalf("center should stay dark under blur, got %+v", c)
	}
}

func TestGGSurface_NegativeBlurClamps(t *testing.T) {
	s := NewGGSurface(whiteFrame(4, 4))
	s.SetBlur(-2)
	if s.blur != 0 {
		t.Fatalf("expected blur clamp to 0, got %v", s.blur)
	}
}

func TestGGSurface_OutsideFrameIsNoop(t *testing.T) {
	frame := whiteFrame(20, 20)
	s := NewGGSurface(frame)
	s.SetFillColor(color.NRGBA{A: 255})
	if err := fillSquare(s, 100, 100, 120, 120); err != nil {
		t.Fatalf("fill: %v", err)
	}
	for i, v := range frame.Pix {
		if v != 255 {
			t.Fatalf("pixel byte %d changed to %d", i, v)
		}
	}
}

func TestGGSurface_ExtremeCoordinatesClampToFrame(t *testing.T) {
	frame := whiteFrame(30, 20)
	s := NewGGSurface(frame)
	s.SetBlur(2)
	s.BeginPath()
	s.MoveTo(-1e300, 5)
	s.LineTo(1e300, 5)
	s.LineTo(10, 1e300)
	if got := s.maskBounds(); got != frame.Bounds() {
		t.Fatalf("bounds %v not clamped to frame %v", got, frame.Bounds())
	}

	s.BeginPath()
	s.MoveTo(1e300, 1e300)
	s.LineTo(2e300, 2e300)
	if got := s.maskBounds(); !got.Empty() {
		t.Fatalf("path beyond the frame should give empty bounds, got %v", got)
	}
}

func TestRecorder_RecordsAndForwards(t *testing.T) {
	frame := whiteFrame(20, 20)
	next := NewGGSurface(frame)
	r := &Recorder{Next: next}
	r.SetFillColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	r.SetBlur(0)
	r.BeginPath()
	r.MoveTo(2, 2)
	r.LineTo(18, 2)
	r.LineTo(18, 18)
	if err := r.Fill(); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := "SetFillColor(1,2,3,255)\nSetBlur(0)\nBeginPath()\nMoveTo(2,2)\nLineTo(18,2)\nLineTo(18,18)\nFill()\n"
	if got := r.Transcript(); got != want {
		t.Fatalf("transcript mismatch:\n%s\nwant:\n%s", got, want)
	}
	if c := frame.RGBAAt(16, 5); c.R != 1 {
		t.Fatalf("forwarded fill not drawn: %+v", c)
	}
	if r.Count("LineTo") != 2 {
		t.Fatalf("expected 2 LineTo calls")
	}
}

func TestRecorder_FailFill(t *testing.T) {
	boom := errors.New("boom")
	r := &Recorder{FailFill: boom}
	if err := r.Fill(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
