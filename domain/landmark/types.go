package landmark

import (
	"context"
	"errors"
	"image"
)

// ErrNoFace is returned when a face record carries no usable keypoints.
var ErrNoFace = errors.New("landmark: face has no keypoints")

// Keypoint is a single labelled landmark in frame pixel space.
type Keypoint struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Face is one detector result: an ordered list of labelled keypoints.
type Face struct {
	Keypoints []Keypoint `json:"keypoints"`
}

// Point is a bare 2D coordinate.
type Point struct {
	X, Y float64
}

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X*(1-t) + q.X*t, Y: p.Y*(1-t) + q.Y*t}
}

// KeypointSet holds the coordinate of landmark id i at index i.
// A set is never mutated after extraction; consumers that keep one across
// frames store a Clone.
type KeypointSet []Point

// Clone returns an independent copy of s.
func (s KeypointSet) Clone() KeypointSet {
	if s == nil {
		return nil
	}
	out := make(KeypointSet, len(s))
	copy(out, s)
	return out
}

// Has reports whether id is inside the index domain of s.
func (s KeypointSet) Has(id int) bool { return id >= 0 && id < len(s) }

// Detector produces faces for a frame. Implementations may block; an empty
// slice means no face was found.
type Detector interface {
	Detect(ctx context.Context, frame *image.RGBA) ([]Face, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(ctx context.Context, frame *image.RGBA) ([]Face, error)

// Detect calls f.
func (f DetectorFunc) Detect(ctx context.Context, frame *image.RGBA) ([]Face, error) {
	return f(ctx, frame)
}
