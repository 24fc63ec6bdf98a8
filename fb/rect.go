package fb

import (
	"fmt"
	"image"

	"bootfb/internal/errors"
)

// PreconditionError is the panic value for calls that break an API
// contract. It signals a programming error, not a runtime condition.
type PreconditionError struct {
	Op     string
	Msg    string
	Rect   image.Rectangle
	Bounds image.Rectangle
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("fb: %s: %s: %v not within %v", e.Op, e.Msg, e.Rect, e.Bounds)
}

// FillRectangle paints [topLeft, bottomRight) with c one pixel at a time,
// writing each cell at row*stride+column. It is meant for small regions;
// use Fill for anything screen sized.
//
// Every corner coordinate must lie within [0, width] or [0, height];
// anything else panics with *PreconditionError. Inverted corners select an
// empty region and write nothing.
func (d *Device) FillRectangle(topLeft, bottomRight image.Point, c Pixel) error {
	if d.state != StateModeSet {
		return errors.Wrap(ErrModeNotSet)
	}

	var (
		x1, y1 = topLeft.X, topLeft.Y
		x2, y2 = bottomRight.X, bottomRight.Y
		width  = d.mode.Width
		height = d.mode.Height
		stride = d.mode.Stride
	)
	if x1 < 0 || x1 > width || x2 < 0 || x2 > width {
		panic(d.precondition("bad X coordinate", topLeft, bottomRight))
	}
	if y1 < 0 || y1 > height || y2 < 0 || y2 > height {
		panic(d.precondition("bad Y coordinate", topLeft, bottomRight))
	}

	enc, ok := encoderFor(d.mode.Format)
	if !ok {
		return d.unsupportedFormat()
	}

	for row := y1; row < y2; row++ {
		for column := x1; column < x2; column++ {
			if err := d.writeEncoded(enc, row*stride+column, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Device) precondition(msg string, topLeft, bottomRight image.Point) *PreconditionError {
	return &PreconditionError{
		Op:     "FillRectangle",
		Msg:    msg,
		Rect:   image.Rectangle{Min: topLeft, Max: bottomRight},
		Bounds: d.Bounds(),
	}
}
