package fb

import (
	"image/color"

	"bootfb/hal"
)

// Pixel is a logical RGB triple. It is encoded into the active mode's byte
// order only when written to the framebuffer.
type Pixel [3]uint8

// RGB returns the Pixel for r, g, b.
func RGB(r, g, b uint8) Pixel {
	return Pixel{r, g, b}
}

// Common colors.
var (
	Black          = RGB(0, 0, 0)
	White          = RGB(255, 255, 255)
	Red            = RGB(255, 0, 0)
	CornflowerBlue = RGB(100, 149, 237)
)

// PixelModel converts any color to an opaque Pixel.
var PixelModel color.Model = color.ModelFunc(pixelModel)

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	return PixelFromColor(c)
}

// PixelFromColor drops alpha and keeps the top 8 bits of each channel.
func PixelFromColor(c color.Color) Pixel {
	r, g, b, _ := c.RGBA()
	return Pixel{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// RGBA implements color.Color. Pixels are always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p[0])
	r |= r << 8
	g = uint32(p[1])
	g |= g << 8
	b = uint32(p[2])
	b |= b << 8
	return r, g, b, 0xffff
}

// BltPixel converts p for the block transfer path.
func (p Pixel) BltPixel() hal.BltPixel {
	return hal.NewBltPixel(p[0], p[1], p[2])
}

// encodeFunc lays a Pixel out in framebuffer byte order.
type encodeFunc func(Pixel) [3]byte

func encodeRGB(p Pixel) [3]byte {
	return p
}

func encodeBGR(p Pixel) [3]byte {
	return [3]byte{p[2], p[1], p[0]}
}

// encoderFor returns the encoder for f. Both encoders are involutions, so
// the same function decodes framebuffer bytes back into a Pixel.
func encoderFor(f hal.PixelFormat) (encodeFunc, bool) {
	switch f {
	case hal.PixelRGB:
		return encodeRGB, true
	case hal.PixelBGR:
		return encodeBGR, true
	default:
		return nil, false
	}
}
