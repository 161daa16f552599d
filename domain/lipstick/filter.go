package lipstick

import (
	"math"

	"github.com/soocke/lipstick-ar-go/domain/landmark"
)

// DefaultMotionThreshold is the average per-landmark displacement, in
// pixels, a new lip shape must exceed before it replaces the retained one.
const DefaultMotionThreshold = 1.7

// MotionFilter gates lip updates on motion. It keeps the last accepted
// keypoint set and only replaces it when the lips moved by more than the
// threshold; otherwise the retained set keeps being rendered.
// Not safe for concurrent use; drive it from a single frame loop.
type MotionFilter struct {
	threshold float64
	paths     []LipPath
	retained  landmark.KeypointSet

	lastOffset float64
	accepted   uint64
	held       uint64
}

// NewMotionFilter returns a filter scoring the given paths. With no paths it
// scores UpperLipPath and LowerLipPath.
func NewMotionFilter(threshold float64, paths ...LipPath) *MotionFilter {
	if len(paths) == 0 {
		paths = []LipPath{UpperLipPath, LowerLipPath}
	}
	return &MotionFilter{threshold: threshold, paths: paths}
}

// SetThreshold updates the acceptance threshold for subsequent frames.
func (f *MotionFilter) SetThreshold(t float64) { f.threshold = t }

// Threshold returns the current acceptance threshold.
func (f *MotionFilter) Threshold() float64 { return f.threshold }

// Retained returns the last accepted set, or nil before the first frame.
// The returned slice must not be modified.
func (f *MotionFilter) Retained() landmark.KeypointSet { return f.retained }

// Reset forgets the retained set so the next frame is force-accepted. Call
// it whenever the detector or its keypoint layout changes.
func (f *MotionFilter) Reset() {
	f.retained = nil
	f.lastOffset = 0
}

// LastOffset is the motion score computed by the most recent Evaluate
// (+Inf when that frame was force-accepted).
func (f *MotionFilter) LastOffset() float64 { return f.lastOffset }

// Counts returns how many frames were accepted and held so far.
func (f *MotionFilter) Counts() (accepted, held uint64) { return f.accepted, f.held }

// Offset scores current against the retained set: the per-path mean
// Euclidean displacement, averaged over paths. ok is false when there is
// nothing comparable (no retained set, or the two sets do not share the
// index domain of every path).
func (f *MotionFilter) Offset(current landmark.KeypointSet) (offset float64, ok bool) {
	if len(f.retained) == 0 || len(current) != len(f.retained) {
		return math.Inf(1), false
	}
	var sum float64
	for _, p := range f.paths {
		d, ok := pathDisplacement(current, f.retained, p)
		if !ok {
			return math.Inf(1), false
		}
		sum += d
	}
	return sum / float64(len(f.paths)), true
}

// Evaluate decides which keypoint set to render this frame. A set that moved
// more than the threshold (or the first set ever seen) is accepted and
// retained; otherwise the retained set is returned unchanged.
func (f *MotionFilter) Evaluate(current landmark.KeypointSet) (render landmark.KeypointSet, accepted bool) {
	if len(current) == 0 {
		return f.retained, false
	}
	offset, _ := f.Offset(current)
	f.lastOffset = offset
	if offset > f.threshold {
		f.retained = current.Clone()
		f.accepted++
		return f.retained, true
	}
	f.held++
	return f.retained, false
}

func pathDisplacement(a, b landmark.KeypointSet, p LipPath) (float64, bool) {
	if len(p) == 0 {
		return 0, true
	}
	var total float64
	for _, id := range p {
		if !a.Has(id) || !b.Has(id) {
			return 0, false
		}
		total += math.Hypot(a[id].X-b[id].X, a[id].Y-b[id].Y)
	}
	return total / float64(len(p)), true
}
