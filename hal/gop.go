package hal

import (
	"errors"
	"fmt"
	"image"
)

// GraphicsOutputProtocolGUID identifies the graphics output capability.
var GraphicsOutputProtocolGUID = MustParseGUID("9042a9de-23dc-4a38-96fb-7aded080516a")

// BytesPerPixel is the size of one framebuffer pixel for every format this
// package can address directly.
const BytesPerPixel = 4

var ErrBadMode = errors.New("hal: invalid display mode")

// PixelFormat is the in-memory byte order of a display mode.
type PixelFormat uint32

// Values match EFI_GRAPHICS_PIXEL_FORMAT.
const (
	PixelRGB PixelFormat = iota
	PixelBGR
	PixelBitMask
	PixelBltOnly
)

func (f PixelFormat) String() string {
	switch f {
	case PixelRGB:
		return "RGB"
	case PixelBGR:
		return "BGR"
	case PixelBitMask:
		return "BitMask"
	case PixelBltOnly:
		return "BltOnly"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint32(f))
	}
}

// ModeInfo describes one display mode.
type ModeInfo struct {
	Width  int
	Height int

	// Stride is the number of pixels per scan line. It may exceed Width.
	Stride int

	Format PixelFormat
}

// Resolution returns the visible size in pixels.
func (m ModeInfo) Resolution() (width, height int) {
	return m.Width, m.Height
}

// Bounds is the visible area.
func (m ModeInfo) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// FrameBufferSize is the number of bytes the mode addresses.
func (m ModeInfo) FrameBufferSize() int {
	return m.Stride * m.Height * BytesPerPixel
}

// Validate checks the mode's structural invariants.
func (m ModeInfo) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrBadMode, m.Width, m.Height)
	}
	if m.Stride < m.Width {
		return fmt.Errorf("%w: stride %d below width %d", ErrBadMode, m.Stride, m.Width)
	}
	if m.Format > PixelBltOnly {
		return fmt.Errorf("%w: format %s", ErrBadMode, m.Format)
	}
	return nil
}

func (m ModeInfo) String() string {
	return fmt.Sprintf("%dx%d/%d %s", m.Width, m.Height, m.Stride, m.Format)
}

// Mode is one entry of the firmware mode list.
type Mode struct {
	Index uint32
	Info  ModeInfo
}

// BltPixel is a block transfer color, in the firmware's field order.
type BltPixel struct {
	Blue     uint8
	Green    uint8
	Red      uint8
	Reserved uint8
}

// NewBltPixel returns the BltPixel for an RGB triple.
func NewBltPixel(r, g, b uint8) BltPixel {
	return BltPixel{Blue: b, Green: g, Red: r}
}

// BltOperation selects what a block transfer does.
type BltOperation uint32

// Values match EFI_GRAPHICS_OUTPUT_BLT_OPERATION.
const (
	BltVideoFill BltOperation = iota
	BltVideoToBltBuffer
	BltBufferToVideo
	BltVideoToVideo
)

func (op BltOperation) String() string {
	switch op {
	case BltVideoFill:
		return "VideoFill"
	case BltVideoToBltBuffer:
		return "VideoToBltBuffer"
	case BltBufferToVideo:
		return "BufferToVideo"
	case BltVideoToVideo:
		return "VideoToVideo"
	default:
		return fmt.Sprintf("BltOperation(%d)", uint32(op))
	}
}

// BltOp is a block transfer request. For BltVideoFill, Color is written to
// the rectangle at Dest of size Dims.
type BltOp struct {
	Operation BltOperation
	Color     BltPixel
	Dest      image.Point
	Dims      image.Point
}

// Rect is the destination rectangle.
func (op BltOp) Rect() image.Rectangle {
	return image.Rectangle{Min: op.Dest, Max: op.Dest.Add(op.Dims)}
}
