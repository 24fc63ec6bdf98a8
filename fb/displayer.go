package fb

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer adapts a Device to the tinygo drivers display interface so
// existing drawing code (fonts, terminals, shapes) can target the firmware
// framebuffer.
type Displayer struct {
	d *Device
}

var _ drivers.Displayer = (*Displayer)(nil)

func NewDisplayer(d *Device) *Displayer {
	return &Displayer{d: d}
}

func (p *Displayer) Size() (x, y int16) {
	m := p.d.Mode()
	return int16(m.Width), int16(m.Height)
}

// SetPixel ignores points outside the visible area and write failures;
// the interface has no way to report them.
func (p *Displayer) SetPixel(x, y int16, c color.RGBA) {
	pt := image.Pt(int(x), int(y))
	if !pt.In(p.d.Bounds()) {
		return
	}
	_ = p.d.WritePixel(pt.Y*p.d.Mode().Stride+pt.X, Pixel{c.R, c.G, c.B})
}

// Display is a no-op: the framebuffer is scanned out directly.
func (p *Displayer) Display() error {
	return nil
}

// FillRectangle clips to the visible area and paints through the block
// transfer path.
func (p *Displayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(p.d.Bounds())
	if r.Empty() {
		return nil
	}
	return p.d.Fill(Pixel{c.R, c.G, c.B}, r.Min, r.Size())
}
