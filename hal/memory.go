package hal

import (
	"errors"
	"fmt"
	"unsafe"
)

var ErrOutOfRange = errors.New("hal: access outside framebuffer")

// FrameBuffer is a bounds-checked view of framebuffer memory. Callers move
// bytes in and out at offsets; the backing memory is never handed out.
type FrameBuffer struct {
	mem []byte
}

// NewFrameBuffer wraps mem, which must stay mapped for the FrameBuffer's
// lifetime.
func NewFrameBuffer(mem []byte) *FrameBuffer {
	return &FrameBuffer{mem: mem}
}

// Base is the address of the first byte.
func (f *FrameBuffer) Base() uintptr {
	if len(f.mem) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(f.mem)))
}

// Size is the region length in bytes.
func (f *FrameBuffer) Size() int {
	return len(f.mem)
}

// WriteAt copies b to the region at off.
func (f *FrameBuffer) WriteAt(off int, b []byte) error {
	if err := f.check(off, len(b)); err != nil {
		return err
	}
	copy(f.mem[off:], b)
	return nil
}

// ReadAt fills b from the region at off.
func (f *FrameBuffer) ReadAt(off int, b []byte) error {
	if err := f.check(off, len(b)); err != nil {
		return err
	}
	copy(b, f.mem[off:])
	return nil
}

func (f *FrameBuffer) check(off, n int) error {
	if off < 0 || n < 0 || off > len(f.mem)-n {
		return fmt.Errorf("%w: %d bytes at offset %d, size %d", ErrOutOfRange, n, off, len(f.mem))
	}
	return nil
}
