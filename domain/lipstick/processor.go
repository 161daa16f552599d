package lipstick

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/soocke/lipstick-ar-go/config"
	"github.com/soocke/lipstick-ar-go/domain/landmark"
)

// ErrMultipleFaces flags a frame with more than one face. It is reported as
// a warning: the first face is still rendered.
var ErrMultipleFaces = errors.New("more than one face supplied; only the first is tracked")

// FrameResult describes what Process did with one frame.
type FrameResult struct {
	Faces    int
	Rendered bool
	Accepted bool
	Offset   float64
	Upper    []landmark.Point
	Lower    []landmark.Point
	Warning  error
}

// Processor runs the per-frame lipstick pipeline: extract keypoints, gate
// them through the motion filter, expand both lip contours and fill them.
// One Processor per tracked video stream; not safe for concurrent use.
type Processor struct {
	filter    *MotionFilter
	extension ExtensionMap
	logger    *slog.Logger
}

// NewProcessor returns a Processor with a fresh MotionFilter. A nil logger
// disables logging.
func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{
		filter:    NewMotionFilter(DefaultMotionThreshold),
		extension: DefaultExtension,
		logger:    logger,
	}
}

// Filter exposes the motion filter, mainly for inspection.
func (p *Processor) Filter() *MotionFilter { return p.filter }

// Reset re-arms first-frame acceptance. Call it when the detector or its
// landmark layout changes.
func (p *Processor) Reset() { p.filter.Reset() }

// Process handles one frame's detector output. cfg is read once, up front;
// callers that mutate configuration concurrently must pass a copy. A nil
// surface runs the pipeline without drawing. Frames with no face render
// nothing and leave the retained shape untouched.
func (p *Processor) Process(s Surface, faces []landmark.Face, cfg *config.Config) (FrameResult, error) {
	c := cfg.Clone()
	res := FrameResult{Faces: len(faces)}
	if len(faces) == 0 {
		return res, nil
	}
	if len(faces) > 1 {
		res.Warning = ErrMultipleFaces
		if p.logger != nil {
			p.logger.Warn("single-face tracking", "faces", len(faces))
		}
	} else if c.MaxFaces > 1 {
		res.Warning = ErrMultipleFaces
	}
	set := landmark.Extract(&faces[0])
	if set == nil {
		res.Warning = landmark.ErrNoFace
		return res, nil
	}
	if !set.Has(UpperLipPath.MaxID()) || !set.Has(LowerLipPath.MaxID()) {
		return res, fmt.Errorf("keypoint set of %d points does not cover the lip contour", len(set))
	}

	// Resolve the style first: the filter must only retain sets that get drawn.
	rgb, err := c.RGB()
	if err != nil {
		return res, err
	}
	style := NewStyle(rgb, c.DarkenPercent, c.Alpha, c.BlurPx)

	p.filter.SetThreshold(c.MotionThreshold)
	render, accepted := p.filter.Evaluate(set)
	res.Accepted = accepted
	res.Offset = p.filter.LastOffset()

	res.Upper = Expand(render, UpperLipPath, p.extension, c.ExtensionDelta)
	res.Lower = Expand(render, LowerLipPath, p.extension, c.ExtensionDelta)

	if s == nil {
		return res, nil
	}
	if err := Render(s, res.Upper, res.Lower, style); err != nil {
		return res, fmt.Errorf("render lips: %w", err)
	}
	res.Rendered = true
	return res, nil
}
