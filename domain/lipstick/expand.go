package lipstick

import "github.com/soocke/lipstick-ar-go/domain/landmark"

// DefaultExtensionDelta is the fraction by which each contour vertex moves
// toward its extension target.
const DefaultExtensionDelta = 0.17

// Expand returns one vertex per path entry, in path order: the landmark
// interpolated a fraction delta of the way toward its extension target.
// delta 0 reproduces the raw contour; values >= 1 overshoot the target and
// are the caller's responsibility. Ids outside set's domain yield the zero
// point, matching Extract's treatment of missing landmarks.
func Expand(set landmark.KeypointSet, path LipPath, ext ExtensionMap, delta float64) []landmark.Point {
	out := make([]landmark.Point, len(path))
	for i, id := range path {
		if !set.Has(id) {
			continue
		}
		pa := set[id]
		target := ext.Target(id)
		pb := pa
		if set.Has(target) {
			pb = set[target]
		}
		out[i] = pa.Lerp(pb, delta)
	}
	return out
}
