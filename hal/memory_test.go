package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameBufferBounds(t *testing.T) {
	fb := NewFrameBuffer(make([]byte, 16))
	assert.Equal(t, 16, fb.Size())
	assert.NotZero(t, fb.Base())

	require.NoError(t, fb.WriteAt(12, []byte{1, 2, 3, 4}))
	got := make([]byte, 4)
	require.NoError(t, fb.ReadAt(12, got))
	assert.Equal(t, []byte{1, 2, 3, 4}, got)

	assert.ErrorIs(t, fb.WriteAt(13, []byte{1, 2, 3, 4}), ErrOutOfRange)
	assert.ErrorIs(t, fb.WriteAt(-1, []byte{1}), ErrOutOfRange)
	assert.ErrorIs(t, fb.ReadAt(16, got[:1]), ErrOutOfRange)
	assert.NoError(t, fb.ReadAt(16, nil))
}

func TestEmptyFrameBuffer(t *testing.T) {
	fb := NewFrameBuffer(nil)
	assert.Zero(t, fb.Base())
	assert.ErrorIs(t, fb.WriteAt(0, []byte{0}), ErrOutOfRange)
}

func TestGUIDRoundTrip(t *testing.T) {
	const s = "9042a9de-23dc-4a38-96fb-7aded080516a"
	g, err := ParseGUID(s)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x9042a9de), g.Data1)
	assert.Equal(t, uint16(0x23dc), g.Data2)
	assert.Equal(t, uint16(0x4a38), g.Data3)
	assert.Equal(t, [8]byte{0x96, 0xfb, 0x7a, 0xde, 0xd0, 0x80, 0x51, 0x6a}, g.Data4)
	assert.Equal(t, s, g.String())
	assert.Equal(t, GraphicsOutputProtocolGUID, g)

	for _, bad := range []string{"", "9042a9de-23dc-4a38-96fb", "9042a9dg-23dc-4a38-96fb-7aded080516a"} {
		_, err := ParseGUID(bad)
		assert.Error(t, err, "ParseGUID(%q)", bad)
	}
}

func TestStatus(t *testing.T) {
	assert.NoError(t, StatusSuccess.Err())
	assert.EqualError(t, StatusInvalidParameter.Err(), "efi: invalid parameter")
	assert.Equal(t, "status(200)", Status(200).String())
}

func TestModeInfoValidate(t *testing.T) {
	assert.NoError(t, ModeInfo{Width: 1024, Height: 768, Stride: 1024}.Validate())
	assert.NoError(t, ModeInfo{Width: 1280, Height: 1024, Stride: 1312, Format: PixelBGR}.Validate())
	assert.ErrorIs(t, ModeInfo{Width: 1024, Height: 768, Stride: 1000}.Validate(), ErrBadMode)
	assert.ErrorIs(t, ModeInfo{Width: 0, Height: 768, Stride: 0}.Validate(), ErrBadMode)
	assert.ErrorIs(t, ModeInfo{Width: 1, Height: 1, Stride: 1, Format: 9}.Validate(), ErrBadMode)
	assert.Equal(t, 1312*1024*BytesPerPixel, ModeInfo{Width: 1280, Height: 1024, Stride: 1312}.FrameBufferSize())
}
