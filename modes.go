package main

import (
	"strconv"
	"strings"

	"bootfb/hal"
	"bootfb/internal/errors"
)

var errModeSyntax = errors.New("mode must look like WIDTHxHEIGHT[/STRIDE][:FORMAT]")

// parseModes reads a comma separated mode list. The format defaults to bgr
// and the stride to the width.
func parseModes(s string) ([]hal.ModeInfo, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var modes []hal.ModeInfo
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		info, err := parseMode(field)
		if err != nil {
			return nil, errors.WrapPrefix(err, strconv.Quote(field))
		}
		modes = append(modes, info)
	}
	return modes, nil
}

func parseMode(field string) (hal.ModeInfo, error) {
	geom, format, hasFormat := strings.Cut(field, ":")
	size, stride, hasStride := strings.Cut(geom, "/")
	w, h, ok := strings.Cut(size, "x")
	if !ok {
		return hal.ModeInfo{}, errModeSyntax
	}

	var (
		info hal.ModeInfo
		err  error
	)
	if info.Width, err = strconv.Atoi(w); err != nil {
		return hal.ModeInfo{}, errModeSyntax
	}
	if info.Height, err = strconv.Atoi(h); err != nil {
		return hal.ModeInfo{}, errModeSyntax
	}
	info.Stride = info.Width
	if hasStride {
		if info.Stride, err = strconv.Atoi(stride); err != nil {
			return hal.ModeInfo{}, errModeSyntax
		}
	}
	info.Format = hal.PixelBGR
	if hasFormat {
		if info.Format, err = parsePixelFormat(format); err != nil {
			return hal.ModeInfo{}, err
		}
	}
	return info, info.Validate()
}

func parsePixelFormat(s string) (hal.PixelFormat, error) {
	switch strings.ToLower(s) {
	case "rgb":
		return hal.PixelRGB, nil
	case "bgr":
		return hal.PixelBGR, nil
	case "bitmask":
		return hal.PixelBitMask, nil
	case "bltonly":
		return hal.PixelBltOnly, nil
	default:
		return 0, errors.Errorf("unknown pixel format %q", s)
	}
}
