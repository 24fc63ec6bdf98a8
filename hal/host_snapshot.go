package hal

import (
	"image"
	"io"

	"golang.org/x/image/bmp"
)

// Snapshot converts the visible part of the current mode to RGBA, undoing
// the mode's byte order.
func (h *Host) Snapshot() *image.RGBA {
	g := h.gop
	g.mu.Lock()
	defer g.mu.Unlock()

	info := g.modes[g.cur].Info
	img := image.NewRGBA(info.Bounds())
	if g.mem == nil {
		return img
	}

	for y := 0; y < info.Height; y++ {
		src := g.mem[y*info.Stride*BytesPerPixel:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < info.Width; x++ {
			p := src[x*BytesPerPixel : x*BytesPerPixel+BytesPerPixel]
			d := dst[x*4 : x*4+4]
			if info.Format == PixelRGB {
				d[0], d[1], d[2] = p[0], p[1], p[2]
			} else {
				d[0], d[1], d[2] = p[2], p[1], p[0]
			}
			d[3] = 0xFF
		}
	}
	return img
}

// WriteBMP encodes Snapshot as a BMP image.
func (h *Host) WriteBMP(w io.Writer) error {
	return bmp.Encode(w, h.Snapshot())
}
