package form

import (
	"fmt"
	"strings"
)

// Mode decides which interaction refreshes a field's surfaced validation
// result.
type Mode string

const (
	// ModeOnChange validates on every write and on blur.
	ModeOnChange Mode = "onChange"
	// ModeOnBlur validates when a field loses focus.
	ModeOnBlur Mode = "onBlur"
	// ModeOnTouched validates on the first blur and on every write after it.
	ModeOnTouched Mode = "onTouched"
	// ModeOnSubmit validates only when the form is submitted.
	ModeOnSubmit Mode = "onSubmit"
	// ModeAll validates on both writes and blur.
	ModeAll Mode = "all"
)

type trigger int

const (
	triggerChange trigger = iota
	triggerBlur
	triggerSubmit
)

// ParseMode maps a configuration string onto a Mode. Matching ignores case
// and accepts the bare event names ("change", "blur", "touched", "submit").
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "onchange", "change":
		return ModeOnChange, nil
	case "onblur", "blur":
		return ModeOnBlur, nil
	case "ontouched", "touched":
		return ModeOnTouched, nil
	case "onsubmit", "submit":
		return ModeOnSubmit, nil
	case "all":
		return ModeAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

func (m Mode) validatesOn(t trigger, touched bool) bool {
	if t == triggerSubmit {
		return true
	}
	switch m {
	case ModeOnChange, ModeAll:
		return true
	case ModeOnBlur:
		return t == triggerBlur
	case ModeOnTouched:
		return t == triggerBlur || touched
	default:
		return false
	}
}
