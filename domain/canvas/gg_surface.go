package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
)

type point struct{ x, y float64 }

// GGSurface draws filled paths onto an RGBA frame in place. Each Fill
// rasterises the path's coverage with gg, softens it with a gaussian blur
// of the current radius, then composites the fill color over the frame
// through that mask.
type GGSurface struct {
	dst   *image.RGBA
	fill  color.NRGBA
	blur  float64
	paths [][]point
}

// NewGGSurface returns a surface drawing onto dst.
func NewGGSurface(dst *image.RGBA) *GGSurface {
	return &GGSurface{dst: dst}
}

// Target returns the frame being drawn on.
func (s *GGSurface) Target() *image.RGBA { return s.dst }

func (s *GGSurface) SetFillColor(c color.NRGBA) { s.fill = c }

func (s *GGSurface) SetBlur(radiusPx float64) {
	if radiusPx < 0 {
		radiusPx = 0
	}
	s.blur = radiusPx
}

func (s *GGSurface) BeginPath() { s.paths = s.paths[:0] }

func (s *GGSurface) MoveTo(x, y float64) {
	s.paths = append(s.paths, []point{{x, y}})
}

func (s *GGSurface) LineTo(x, y float64) {
	if len(s.paths) == 0 {
		s.MoveTo(x, y)
		return
	}
	last := len(s.paths) - 1
	s.paths[last] = append(s.paths[last], point{x, y})
}

// Fill composites the current path and clears it. Paths entirely outside
// the frame are a no-op.
func (s *GGSurface) Fill() error {
	defer s.BeginPath()
	if s.dst == nil || len(s.paths) == 0 || s.fill.A == 0 {
		return nil
	}
	rect := s.maskBounds()
	if rect.Empty() {
		return nil
	}

	dc := gg.NewContext(rect.Dx(), rect.Dy())
	defer dc.Close()
	ox, oy := float64(rect.Min.X), float64(rect.Min.Y)
	dc.SetRGBA(1, 1, 1, 1)
	for _, sub := range s.paths {
		if len(sub) < 2 {
			continue
		}
		dc.MoveTo(sub[0].x-ox, sub[0].y-oy)
		for _, p := range sub[1:] {
			dc.LineTo(p.x-ox, p.y-oy)
		}
		dc.ClosePath()
	}
	if err := dc.Fill(); err != nil {
		return err
	}

	var mask image.Image = dc.Image()
	if s.blur > 0 {
		mask = imaging.Blur(mask, s.blur)
	}
	draw.DrawMask(s.dst, rect, image.NewUniform(s.fill), image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// maskBounds is the path's bounding box padded for the blur tail and
// clipped to the frame.
func (s *GGSurface) maskBounds() image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sub := range s.paths {
		for _, p := range sub {
			minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
			minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
		}
	}
	if math.IsInf(minX, 0) || math.IsNaN(minX) || math.IsNaN(minY) {
		return image.Rectangle{}
	}
	pad := math.Ceil(3*s.blur) + 1
	b := s.dst.Bounds()
	x0 := clamp(math.Floor(minX)-pad, b.Min.X, b.Max.X)
	y0 := clamp(math.Floor(minY)-pad, b.Min.Y, b.Max.Y)
	x1 := clamp(math.Ceil(maxX)+pad, b.Min.X, b.Max.X)
	y1 := clamp(math.Ceil(maxY)+pad, b.Min.Y, b.Max.Y)
	return image.Rect(x0, y0, x1, y1).Intersect(b)
}

// clamp limits v to [lo, hi] before the int conversion, which is undefined
// for values outside the int range.
func clamp(v float64, lo, hi int) int {
	if math.IsNaN(v) || v < float64(lo) {
		return lo
	}
	if v > float64(hi) {
		return hi
	}
	return int(v)
}
