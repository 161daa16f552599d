package view

import (
	"image"

	"github.com/soocke/lipstick-ar-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the latest frame with the lip overlay drawn.
type CapturePreview interface {
	UpdateCapture(img image.Image)
	Reset()
}

type capturePreview struct {
	label   *LabelWidget
	maxW    int
	maxH    int
	current *Img // disposed before replacement so old pixel data is released
}

const (
	defaultPreviewW = 640
	defaultPreviewH = 360
)

// NewCapturePreview grids the preview label across columns 0-4 of row.
// Frames are downscaled to fit maxW x maxH.
func NewCapturePreview(row, maxW, maxH int) CapturePreview {
	if maxW < 50 || maxH < 50 {
		maxW, maxH = defaultPreviewW, defaultPreviewH
	}
	photo := NewPhoto(Data(images.EncodePNG(images.Placeholder(maxW, maxH))))
	lbl := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &capturePreview{label: lbl, maxW: maxW, maxH: maxH, current: photo}
}

func (v *capturePreview) show(img image.Image) {
	if v.current != nil {
		v.current.Delete()
	}
	v.current = NewPhoto(Data(images.EncodePNG(img)))
	v.label.Configure(Image(v.current))
}

func (v *capturePreview) UpdateCapture(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	v.show(images.ScaleToFit(img, v.maxW, v.maxH))
}

func (v *capturePreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.show(images.Placeholder(v.maxW, v.maxH))
}
