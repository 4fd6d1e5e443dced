package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ParseColor accepts CSS-style colours: #rgb, #rrggbb, #rrggbbaa,
// rgb(r, g, b), rgba(r, g, b, a) with a in [0,1], and "transparent".
func ParseColor(s string) (color.Color, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	switch {
	case raw == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(raw, "#"):
		return parseHex(raw[1:])
	case strings.HasPrefix(raw, "rgba(") && strings.HasSuffix(raw, ")"):
		return parseFunc(raw, raw[len("rgba("):len(raw)-1], true)
	case strings.HasPrefix(raw, "rgb(") && strings.HasSuffix(raw, ")"):
		return parseFunc(raw, raw[len("rgb("):len(raw)-1], false)
	}
	return nil, fmt.Errorf("unrecognized color %q", s)
}

func mustColor(s string, fallback color.Color) color.Color {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func parseHex(hex string) (color.Color, error) {
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return nil, fmt.Errorf("invalid hex color #%s", hex)
		}
	}
	switch len(hex) {
	case 3, 6:
		return drawing.ColorFromHex(hex), nil
	case 8:
		a, _ := strconv.ParseUint(hex[6:], 16, 8)
		return drawing.ColorFromHex(hex[:6]).WithAlpha(uint8(a)), nil
	}
	return nil, fmt.Errorf("invalid hex color #%s", hex)
}

// parseFunc checks the shape and ranges of an rgb()/rgba() call and hands
// the conversion to drawing, which zero-fills anything it cannot parse.
func parseFunc(raw, body string, withAlpha bool) (color.Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d color components, got %d", want, len(parts))
	}

	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid color component %q", parts[i])
		}
	}
	if !withAlpha {
		return drawing.ColorFromRGB(raw), nil
	}

	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || math.IsNaN(a) || a < 0 || a > 1 {
		return nil, fmt.Errorf("invalid alpha %q", parts[3])
	}
	return drawing.ColorFromRGBA(raw), nil
}
