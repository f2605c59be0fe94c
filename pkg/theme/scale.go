package theme

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	guidelineBaseWidth  = 350
	guidelineBaseHeight = 680
	defaultMSFactor     = 0.5
)

// Scale converts design sizes into device sizes. Sizes are expressed as
// "<n>@s" (width scaled), "<n>@vs" (height scaled) or "<n>@ms[factor]"
// (moderately scaled); a bare number is used as is.
type Scale struct {
	Width  float64
	Height float64
}

// DefaultScale maps design sizes one to one.
func DefaultScale() Scale {
	return Scale{Width: guidelineBaseWidth, Height: guidelineBaseHeight}
}

// S scales size by the width ratio.
func (s Scale) S(size float64) float64 {
	return s.width() / guidelineBaseWidth * size
}

// VS scales size by the height ratio.
func (s Scale) VS(size float64) float64 {
	return s.height() / guidelineBaseHeight * size
}

// MS scales size by a fraction of the width ratio.
func (s Scale) MS(size, factor float64) float64 {
	return size + (s.S(size)-size)*factor
}

// Resolve parses a size expression.
func (s Scale) Resolve(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("theme: empty size")
	}
	value, unit, hasUnit := strings.Cut(raw, "@")
	size, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("theme: size %q: %w", raw, err)
	}
	if !hasUnit {
		return size, nil
	}
	switch {
	case unit == "s":
		return s.S(size), nil
	case unit == "vs":
		return s.VS(size), nil
	case strings.HasPrefix(unit, "ms"):
		factor := defaultMSFactor
		if rest := strings.TrimPrefix(unit, "ms"); rest != "" {
			factor, err = strconv.ParseFloat(rest, 64)
			if err != nil {
				return 0, fmt.Errorf("theme: size %q factor: %w", raw, err)
			}
		}
		return s.MS(size, factor), nil
	default:
		return 0, fmt.Errorf("theme: size %q: unknown unit %q", raw, unit)
	}
}

func (s Scale) width() float64 {
	if s.Width <= 0 {
		return guidelineBaseWidth
	}
	return s.Width
}

func (s Scale) height() float64 {
	if s.Height <= 0 {
		return guidelineBaseHeight
	}
	return s.Height
}
