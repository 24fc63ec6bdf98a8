//go:build linux

package hal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// allocFrameBuffer maps anonymous memory for the aperture, the closest the
// host gets to a device BAR.
func allocFrameBuffer(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("hal: map %d byte framebuffer: %w", size, err)
	}
	return mem, nil
}

func freeFrameBuffer(mem []byte) error {
	return unix.Munmap(mem)
}
