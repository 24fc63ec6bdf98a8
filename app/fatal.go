package app

import (
	"fmt"
	"image/color"
	"strings"

	"bootfb/fb"
	"bootfb/hal"
	"bootfb/internal/errors"
	"bootfb/kernel"
)

// InstallFatalHandler makes kernel.Fatal report on st's console and turn
// the screen red.
func InstallFatalHandler(st hal.SystemTable) {
	console := st.ConsoleOut()
	var gop hal.GraphicsOutput
	if proto, err := st.LocateProtocol(hal.GraphicsOutputProtocolGUID); err == nil {
		gop, _ = proto.(hal.GraphicsOutput)
	}
	kernel.SetFatalHandler(func(info kernel.FatalInfo) {
		handleFatal(console, gop, info)
	})
}

func handleFatal(console hal.Logger, gop hal.GraphicsOutput, info kernel.FatalInfo) {
	if console != nil {
		console.WriteLineString(fmt.Sprintf("bootfb fatal: %v", info.Err))

		// Prefer where the error was raised over where Fatal was called.
		stack := errors.Stack(info.Err)
		if len(stack) == 0 {
			stack = info.Stack
		}
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			console.WriteLineString(line)
		}
	}

	if gop == nil {
		return
	}
	// Paint in whatever mode the firmware is in; the failure may predate
	// our own SetMode.
	dev, err := fb.Attach(gop, nil)
	if err != nil {
		return
	}
	disp := fb.NewDisplayer(dev)
	w, h := disp.Size()
	_ = disp.FillRectangle(0, 0, w, h, color.RGBA{R: fb.Red[0], G: fb.Red[1], B: fb.Red[2], A: 0xff})
}
