package capture

import (
	"image"
	"image/draw"
	"sync"
)

// Decoded frames arrive in whatever layout the decoder picked (NRGBA, YCbCr,
// paletted). They are converted into pooled RGBA buffers so the overlay can
// be drawn in place. Consumers that are done with a frame may hand it back
// with RecycleFrame; if they never do, frames are simply garbage collected.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image sized to rect with Stride
// width*4. Pixel contents are unspecified.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	}
	img.Stride = w * 4
	img.Rect = rect
	img.Pix = img.Pix[:needed]
	return img
}

// toRGBA copies src into a pooled RGBA frame anchored at the origin.
func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := acquireFrame(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return dst
}

// RecycleFrame returns the frame to the pool. The caller must not touch the
// frame afterwards.
func RecycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}
