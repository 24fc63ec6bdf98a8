// Package hal models the firmware services the display layer consumes:
// the system table handed to boot-time code, the graphics output
// capability located through it, and the raw framebuffer memory behind the
// active display mode.
//
// Real firmware and the host emulation returned by NewHost both satisfy
// these interfaces; nothing above this package touches either directly.
package hal

import "fmt"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Revision is a firmware specification revision. UEFI encodes 2.70 as
// Major 2, Minor 70.
type Revision struct {
	Major uint16
	Minor uint16
}

func (r Revision) String() string {
	return fmt.Sprintf("%d.%d", r.Major, r.Minor/10)
}

// SystemTable is the context object passed to boot-time code in place of
// ambient global firmware state.
type SystemTable interface {
	// FirmwareVendor identifies the firmware implementation.
	FirmwareVendor() string

	// Revision is the UEFI revision the firmware implements.
	Revision() Revision

	// ConsoleOut is the firmware text console.
	ConsoleOut() Logger

	// LocateProtocol returns the first protocol instance registered under
	// guid, or StatusNotFound.
	LocateProtocol(guid GUID) (any, error)
}

// GraphicsOutput is the graphics output capability: mode enumeration,
// mode switching, block transfers and raw framebuffer access.
type GraphicsOutput interface {
	// Modes lists the display modes the device supports, in firmware order.
	Modes() []Mode

	// CurrentMode is the active display mode.
	CurrentMode() Mode

	// SetMode switches to one of the modes returned by Modes.
	SetMode(m Mode) error

	// Blt performs a block transfer.
	Blt(op BltOp) error

	// FrameBuffer is the memory behind the current mode. It is nil for
	// PixelBltOnly modes.
	FrameBuffer() *FrameBuffer
}
