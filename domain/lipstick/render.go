package lipstick

import (
	"image/color"
	"math"

	"github.com/soocke/lipstick-ar-go/domain/landmark"
)

// Surface is the 2D path-fill primitive the renderer draws on. Fill closes
// the current path implicitly and clears it.
type Surface interface {
	SetFillColor(c color.NRGBA)
	SetBlur(radiusPx float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Fill() error
}

// Style is the resolved fill for one frame.
type Style struct {
	Color  color.NRGBA
	BlurPx float64
}

// NewStyle darkens rgb by darken (0 keeps it, 1 is black) and applies alpha.
func NewStyle(rgb [3]uint8, darken, alpha, blurPx float64) Style {
	k := 1 - darken
	return Style{
		Color: color.NRGBA{
			R: channel(float64(rgb[0]) * k),
			G: channel(float64(rgb[1]) * k),
			B: channel(float64(rgb[2]) * k),
			A: channel(alpha * 255),
		},
		BlurPx: blurPx,
	}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

// Render fills the upper and lower lip polygons with style. The blur is
// reset to none afterwards even when a fill fails, so it cannot leak into
// later drawing on the same surface. Polygons with fewer than three
// vertices are skipped.
func Render(s Surface, upper, lower []landmark.Point, style Style) (err error) {
	s.SetFillColor(style.Color)
	s.SetBlur(style.BlurPx)
	defer s.SetBlur(0)
	for _, poly := range [][]landmark.Point{upper, lower} {
		if len(poly) < 3 {
			continue
		}
		s.BeginPath()
		s.MoveTo(poly[0].X, poly[0].Y)
		for _, p := range poly[1:] {
			s.LineTo(p.X, p.Y)
		}
		if ferr := s.Fill(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}
