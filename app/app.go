// Package app is the boot-time display check: it prints a firmware banner,
// brings up the framebuffer, clears it and draws a set of rectangles from
// concurrent workers.
package app

import (
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"bootfb/fb"
	"bootfb/hal"
	"bootfb/internal/buildinfo"
	"bootfb/internal/errors"
	"bootfb/internal/logx"
	"bootfb/kernel"
)

// maxVendorLen caps the vendor string in the banner.
const maxVendorLen = 32

var ErrFirmwareTooOld = errors.New("app: firmware predates UEFI 2.0")

// Rect is a filled rectangle [Min, Max).
type Rect struct {
	Min, Max image.Point
	Color    fb.Pixel
}

type Config struct {
	Background fb.Pixel
	Rects      []Rect

	// Logger receives boot diagnostics. Nil logs to the firmware console
	// at info level.
	Logger *slog.Logger
}

// DefaultConfig is the classic GOP test pattern.
func DefaultConfig() Config {
	return Config{
		Background: fb.CornflowerBlue,
		Rects: []Rect{
			{Min: image.Pt(50, 30), Max: image.Pt(150, 600), Color: fb.RGB(250, 128, 64)},
			{Min: image.Pt(400, 120), Max: image.Pt(750, 450), Color: fb.RGB(16, 128, 255)},
		},
	}
}

// Run executes the boot sequence against st. Any returned error is a hard
// failure; callers hand it to kernel.Fatal.
func Run(st hal.SystemTable, cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = logx.New(st.ConsoleOut(), slog.LevelInfo)
	}

	if err := banner(st, log); err != nil {
		return err
	}

	dev, err := fb.Open(st, log)
	if err != nil {
		return err
	}
	if err := dev.SetMode(nil); err != nil {
		return err
	}
	if err := dev.Clear(cfg.Background); err != nil {
		return err
	}
	if err := drawRects(kernel.NewSpinlock(dev), cfg.Rects); err != nil {
		return err
	}

	log.Info("GOP framebuffer test complete")
	return nil
}

func banner(st hal.SystemTable, log *slog.Logger) error {
	vendor := []rune(st.FirmwareVendor())
	if len(vendor) > maxVendorLen {
		vendor = vendor[:maxVendorLen]
	}
	rev := st.Revision()
	log.Info("firmware", "vendor", string(vendor), "uefi", rev.String(), buildinfo.Attr())

	switch {
	case rev.Major < 2:
		return errors.Errorf("%w: %s", ErrFirmwareTooOld, rev)
	case rev.Major == 2 && rev.Minor < 30:
		log.Warn("firmware older than UEFI 2.3, graphics output may be limited", "uefi", rev.String())
	}
	return nil
}

// drawRects fills every rectangle from its own worker. Workers take turns
// on the device through the spinlock.
func drawRects(dev *kernel.Spinlock[*fb.Device], rects []Rect) error {
	var g errgroup.Group
	for _, r := range rects {
		r := r
		g.Go(func() error { return drawRect(dev, r) })
	}
	return g.Wait()
}

func drawRect(dev *kernel.Spinlock[*fb.Device], r Rect) (err error) {
	guard := dev.Lock()
	defer guard.Unlock()
	defer func() {
		if p := recover(); p != nil {
			perr, ok := p.(*fb.PreconditionError)
			if !ok {
				panic(p)
			}
			err = errors.Wrap(perr)
		}
	}()

	err = (*guard.Value()).FillRectangle(r.Min, r.Max, r.Color)
	if errors.Is(err, fb.ErrUnsupportedFormat) {
		// Already reported by the device; the background fill stands.
		return nil
	}
	return err
}
