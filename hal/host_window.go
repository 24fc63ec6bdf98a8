//go:build cgo

package hal

import (
	"bootfb/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window that scans out the emulated framebuffer,
// calling step once per frame. It blocks until the window closes or step
// fails.
func RunWindow(h *Host, step func() error) error {
	info := h.gop.CurrentMode().Info

	g := &hostScanout{h: h, step: step}
	ebiten.SetWindowTitle("bootfb (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(info.Width, info.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostScanout struct {
	h     *Host
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostScanout) Update() error {
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostScanout) Draw(screen *ebiten.Image) {
	img := g.h.Snapshot()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.fbImg.WritePixels(img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostScanout) Layout(outsideWidth, outsideHeight int) (int, int) {
	info := g.h.gop.CurrentMode().Info
	return info.Width, info.Height
}
