// Package fb drives the firmware framebuffer: it picks a display mode,
// fills regions through the block transfer path and writes single pixels
// straight into framebuffer memory in the mode's byte order.
//
// A Device does no locking of its own. Code that shares one between
// goroutines wraps it in a kernel.Spinlock and holds the guard for each
// sequence of calls.
package fb

import (
	"fmt"
	"image"
	"log/slog"

	"bootfb/hal"
	"bootfb/internal/errors"
	"bootfb/internal/logx"
)

// DefaultWidth and DefaultHeight are the resolution SetMode(nil) looks for.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// BytesPerPixel is the framebuffer pixel size.
const BytesPerPixel = hal.BytesPerPixel

var (
	ErrModeNotFound           = errors.New("fb: no matching display mode")
	ErrModeRequestUnsupported = errors.New("fb: explicit mode requests are not supported")
	ErrModeNotSet             = errors.New("fb: display mode not set")
	ErrUnsupportedFormat      = errors.New("fb: unsupported pixel format")
	ErrNotGraphicsOutput      = errors.New("fb: protocol is not a graphics output")
)

// State is the device lifecycle stage.
type State uint8

const (
	StateCreated State = iota
	StateModeSet
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateModeSet:
		return "mode set"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// ModeRequest names a specific display mode.
type ModeRequest struct {
	Width        int
	Height       int
	BitsPerPixel int
}

// Device owns the graphics output handle and its framebuffer.
type Device struct {
	gop   hal.GraphicsOutput
	log   *slog.Logger
	state State
	mode  hal.ModeInfo
	fb    *hal.FrameBuffer
}

// Open locates the graphics output capability through st.
func Open(st hal.SystemTable, log *slog.Logger) (*Device, error) {
	proto, err := st.LocateProtocol(hal.GraphicsOutputProtocolGUID)
	if err != nil {
		return nil, errors.WrapPrefix(err, "locate graphics output")
	}
	gop, ok := proto.(hal.GraphicsOutput)
	if !ok {
		return nil, errors.Errorf("%w: %T", ErrNotGraphicsOutput, proto)
	}
	return New(gop, log), nil
}

// New wraps an already located graphics output. A nil log discards
// diagnostics.
func New(gop hal.GraphicsOutput, log *slog.Logger) *Device {
	if log == nil {
		log = logx.Discard()
	}
	return &Device{gop: gop, log: log}
}

// Attach wraps a graphics output whose mode is already set, adopting its
// current mode as if SetMode had selected it.
func Attach(gop hal.GraphicsOutput, log *slog.Logger) (*Device, error) {
	mode := gop.CurrentMode()
	if err := mode.Info.Validate(); err != nil {
		return nil, errors.Wrap(err)
	}
	d := New(gop, log)
	d.mode = mode.Info
	d.fb = gop.FrameBuffer()
	d.state = StateModeSet
	return d, nil
}

// State reports the lifecycle stage.
func (d *Device) State() State { return d.state }

// Mode is the mode selected by SetMode. It is the zero ModeInfo before that.
func (d *Device) Mode() hal.ModeInfo { return d.mode }

// Bounds is the visible area of the selected mode.
func (d *Device) Bounds() image.Rectangle { return d.mode.Bounds() }

// SetMode selects a display mode. With a nil request it searches the
// firmware mode list for DefaultWidth x DefaultHeight and takes the first
// match. Explicit requests are not implemented and fail with
// ErrModeRequestUnsupported, leaving the current mode in place.
func (d *Device) SetMode(req *ModeRequest) error {
	if req != nil {
		return errors.Errorf("%w: %dx%d@%dbpp", ErrModeRequestUnsupported, req.Width, req.Height, req.BitsPerPixel)
	}

	var (
		mode  hal.Mode
		found bool
	)
	for _, m := range d.gop.Modes() {
		if w, h := m.Info.Resolution(); w == DefaultWidth && h == DefaultHeight {
			mode, found = m, true
			break
		}
	}
	if !found {
		return errors.Errorf("%w: %dx%d", ErrModeNotFound, DefaultWidth, DefaultHeight)
	}
	if err := mode.Info.Validate(); err != nil {
		return errors.Wrap(err)
	}

	if err := d.gop.SetMode(mode); err != nil {
		return errors.WrapPrefix(err, fmt.Sprintf("set mode %d", mode.Index))
	}

	d.mode = mode.Info
	d.fb = d.gop.FrameBuffer()
	d.state = StateModeSet
	d.log.Info("mode accepted",
		"index", mode.Index,
		"width", mode.Info.Width,
		"height", mode.Info.Height,
		"stride", mode.Info.Stride,
		"format", mode.Info.Format.String(),
	)
	return nil
}

// Fill paints the rectangle [origin, origin+dims) with c using the
// firmware's block transfer.
func (d *Device) Fill(c Pixel, origin, dims image.Point) error {
	if d.state != StateModeSet {
		return errors.Wrap(ErrModeNotSet)
	}
	err := d.gop.Blt(hal.BltOp{
		Operation: hal.BltVideoFill,
		Color:     c.BltPixel(),
		Dest:      origin,
		Dims:      dims,
	})
	if err != nil {
		return errors.WrapPrefix(err, fmt.Sprintf("fill %v+%v", origin, dims))
	}
	return nil
}

// Clear fills the whole visible area with c.
func (d *Device) Clear(c Pixel) error {
	return d.Fill(c, image.Point{}, d.Bounds().Size())
}

// WritePixel stores rgb at pixel index (byte offset BytesPerPixel*index) in
// the mode's byte order. The reserved fourth byte is left alone.
//
// On modes whose format cannot be addressed directly nothing is written, a
// diagnostic is logged and ErrUnsupportedFormat is returned; callers that
// only use the block transfer path may ignore it.
func (d *Device) WritePixel(index int, rgb Pixel) error {
	if d.state != StateModeSet {
		return errors.Wrap(ErrModeNotSet)
	}
	enc, ok := encoderFor(d.mode.Format)
	if !ok {
		return d.unsupportedFormat()
	}
	return d.writeEncoded(enc, index, rgb)
}

// ReadPixel returns the logical color stored at pixel index.
func (d *Device) ReadPixel(index int) (Pixel, error) {
	if d.state != StateModeSet {
		return Pixel{}, errors.Wrap(ErrModeNotSet)
	}
	dec, ok := encoderFor(d.mode.Format)
	if !ok {
		return Pixel{}, errors.Errorf("%w: %s", ErrUnsupportedFormat, d.mode.Format)
	}

	off, err := d.pixelOffset(index)
	if err != nil {
		return Pixel{}, err
	}
	var raw [3]byte
	if err := d.fb.ReadAt(off, raw[:]); err != nil {
		return Pixel{}, errors.Wrap(err)
	}
	return Pixel(dec(Pixel(raw))), nil
}

func (d *Device) writeEncoded(enc encodeFunc, index int, rgb Pixel) error {
	off, err := d.pixelOffset(index)
	if err != nil {
		return err
	}
	px := enc(rgb)
	if err := d.fb.WriteAt(off, px[:]); err != nil {
		return errors.Wrap(err)
	}
	return nil
}

// pixelOffset turns a pixel index into a byte offset. The index is checked
// first so the multiplication cannot wrap.
func (d *Device) pixelOffset(index int) (int, error) {
	if n := d.fb.Size() / BytesPerPixel; index < 0 || index >= n {
		return 0, errors.Errorf("%w: pixel %d of %d", hal.ErrOutOfRange, index, n)
	}
	return index * BytesPerPixel, nil
}

func (d *Device) unsupportedFormat() error {
	d.log.Warn("unsupported pixel format", "format", d.mode.Format.String())
	return errors.Errorf("%w: %s", ErrUnsupportedFormat, d.mode.Format)
}
