package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootfb/hal"
)

func TestParseModes(t *testing.T) {
	modes, err := parseModes("1024x768:rgb, 800x600/832:BGR,640x480,1024x768:bltonly")
	require.NoError(t, err)
	assert.Equal(t, []hal.ModeInfo{
		{Width: 1024, Height: 768, Stride: 1024, Format: hal.PixelRGB},
		{Width: 800, Height: 600, Stride: 832, Format: hal.PixelBGR},
		{Width: 640, Height: 480, Stride: 640, Format: hal.PixelBGR},
		{Width: 1024, Height: 768, Stride: 1024, Format: hal.PixelBltOnly},
	}, modes)

	modes, err = parseModes("  ")
	require.NoError(t, err)
	assert.Nil(t, modes)
}

func TestParseModesRejects(t *testing.T) {
	for _, s := range []string{
		"1024",
		"axb",
		"1024x768/x",
		"1024x768:cmyk",
		"1024x768/1000",
		"0x768",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := parseModes(s)
			assert.Error(t, err)
		})
	}

	_, err := parseModes("1024x768/1000")
	assert.ErrorIs(t, err, hal.ErrBadMode)
	_, err = parseModes("1024")
	assert.ErrorIs(t, err, errModeSyntax)
}
