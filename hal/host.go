package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig describes the emulated firmware.
type HostConfig struct {
	Vendor   string
	Revision Revision

	// Modes is the mode list in firmware order. The first entry is active
	// at boot.
	Modes []ModeInfo

	// Console receives ConsoleOut lines. Nil means stdout.
	Console Logger
}

// DefaultHostConfig mimics an OVMF guest with a standard VGA adapter.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Vendor:   "EDK II",
		Revision: Revision{Major: 2, Minor: 70},
		Modes: []ModeInfo{
			{Width: 640, Height: 480, Stride: 640, Format: PixelBGR},
			{Width: 800, Height: 600, Stride: 800, Format: PixelBGR},
			{Width: 1024, Height: 768, Stride: 1024, Format: PixelBGR},
			{Width: 1280, Height: 1024, Stride: 1312, Format: PixelBGR},
		},
	}
}

// Host is an in-process firmware: a SystemTable whose only protocol is an
// emulated graphics output device backed by host memory.
type Host struct {
	vendor  string
	rev     Revision
	console Logger
	faults  *faultTable
	gop     *hostGOP
}

// NewHost builds the emulated firmware. The framebuffer aperture is sized
// for the largest mode and stays mapped until Close.
func NewHost(cfg HostConfig) (*Host, error) {
	if len(cfg.Modes) == 0 {
		return nil, fmt.Errorf("%w: empty mode list", ErrBadMode)
	}

	modes := make([]Mode, len(cfg.Modes))
	size := 0
	for i, info := range cfg.Modes {
		if err := info.Validate(); err != nil {
			return nil, fmt.Errorf("mode %d: %w", i, err)
		}
		modes[i] = Mode{Index: uint32(i), Info: info}
		if n := info.FrameBufferSize(); n > size {
			size = n
		}
	}

	mem, err := allocFrameBuffer(size)
	if err != nil {
		return nil, err
	}

	console := cfg.Console
	if console == nil {
		console = NewWriterLogger(os.Stdout)
	}

	faults := &faultTable{}
	return &Host{
		vendor:  cfg.Vendor,
		rev:     cfg.Revision,
		console: console,
		faults:  faults,
		gop: &hostGOP{
			modes:  modes,
			mem:    mem,
			faults: faults,
		},
	}, nil
}

// Close releases the framebuffer aperture. The Host must not be used
// afterwards.
func (h *Host) Close() error {
	h.gop.mu.Lock()
	defer h.gop.mu.Unlock()
	if h.gop.mem == nil {
		return nil
	}
	err := freeFrameBuffer(h.gop.mem)
	h.gop.mem = nil
	return err
}

func (h *Host) FirmwareVendor() string { return h.vendor }
func (h *Host) Revision() Revision     { return h.rev }
func (h *Host) ConsoleOut() Logger     { return h.console }

func (h *Host) LocateProtocol(guid GUID) (any, error) {
	if st := h.faults.take("LocateProtocol"); st != StatusSuccess {
		return nil, st
	}
	if guid == GraphicsOutputProtocolGUID {
		return GraphicsOutput(h.gop), nil
	}
	return nil, StatusNotFound
}

// GraphicsOutput returns the emulated device without going through
// LocateProtocol.
func (h *Host) GraphicsOutput() GraphicsOutput {
	return h.gop
}

// FailNext makes the next call of op ("LocateProtocol", "SetMode" or
// "Blt") return st instead of running.
func (h *Host) FailNext(op string, st Status) {
	h.faults.set(op, st)
}

type faultTable struct {
	mu      sync.Mutex
	pending map[string]Status
}

func (t *faultTable) set(op string, st Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending == nil {
		t.pending = make(map[string]Status)
	}
	t.pending[op] = st
}

func (t *faultTable) take(op string) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.pending[op]
	if !ok {
		return StatusSuccess
	}
	delete(t.pending, op)
	return st
}

type hostGOP struct {
	mu     sync.Mutex
	modes  []Mode
	cur    int
	mem    []byte
	faults *faultTable
}

func (g *hostGOP) Modes() []Mode {
	out := make([]Mode, len(g.modes))
	copy(out, g.modes)
	return out
}

func (g *hostGOP) CurrentMode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modes[g.cur]
}

func (g *hostGOP) SetMode(m Mode) error {
	if st := g.faults.take("SetMode"); st != StatusSuccess {
		return st
	}
	if int(m.Index) >= len(g.modes) || g.modes[m.Index].Info != m.Info {
		return StatusUnsupported
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.cur = int(m.Index)
	// A mode switch blanks the screen.
	clear(g.mem)
	return nil
}

func (g *hostGOP) Blt(op BltOp) error {
	if st := g.faults.take("Blt"); st != StatusSuccess {
		return st
	}
	if op.Operation != BltVideoFill {
		return StatusUnsupported
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	info := g.modes[g.cur].Info
	r := op.Rect()
	if op.Dest.X < 0 || op.Dest.Y < 0 || op.Dims.X < 0 || op.Dims.Y < 0 ||
		r.Max.X > info.Width || r.Max.Y > info.Height {
		return StatusInvalidParameter
	}

	px := encodeBltPixel(info.Format, op.Color)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * info.Stride * BytesPerPixel
		for x := r.Min.X; x < r.Max.X; x++ {
			copy(g.mem[row+x*BytesPerPixel:], px[:])
		}
	}
	return nil
}

func (g *hostGOP) FrameBuffer() *FrameBuffer {
	g.mu.Lock()
	defer g.mu.Unlock()
	info := g.modes[g.cur].Info
	if info.Format == PixelBltOnly {
		return nil
	}
	return NewFrameBuffer(g.mem[:info.FrameBufferSize()])
}

// encodeBltPixel lays a fill color out in the mode's memory order. Modes
// without a directly addressable layout use the BltPixel order.
func encodeBltPixel(f PixelFormat, c BltPixel) [BytesPerPixel]byte {
	if f == PixelRGB {
		return [BytesPerPixel]byte{c.Red, c.Green, c.Blue, 0}
	}
	return [BytesPerPixel]byte{c.Blue, c.Green, c.Red, 0}
}
