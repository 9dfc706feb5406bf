package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor reads the CSS color forms used by Theme.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBA(s[len("rgba(") : len(s)-1])
	}
	return color.NRGBA{}, fmt.Errorf("render: unsupported color %q", s)
}

func parseHex(h string) (color.NRGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("render: bad hex color #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: bad hex color #%s: %w", h, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func parseRGBA(body string) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("render: bad rgba(%s)", body)
	}
	var c [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("render: bad rgba(%s): %w", body, err)
		}
		c[i] = v
	}
	return color.NRGBA{
		R: uint8(clampByte(c[0])),
		G: uint8(clampByte(c[1])),
		B: uint8(clampByte(c[2])),
		A: uint8(clampByte(c[3] * 255)),
	}, nil
}

func clampByte(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v + 0.5
}
