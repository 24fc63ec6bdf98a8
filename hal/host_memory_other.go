//go:build !linux

package hal

func allocFrameBuffer(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func freeFrameBuffer(_ []byte) error {
	return nil
}
