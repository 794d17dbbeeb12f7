package timeseries

import (
	"fmt"
	"strings"
)

// Flag is the quality code attached to a single observation.
type Flag int

const (
	FlagValid Flag = iota
	FlagInvalid
	FlagBelowThreshold
	FlagAboveThreshold
)

// AllFlags returns the full flag domain. The set is closed; readers map
// their source-specific quality codes onto these values.
func AllFlags() []Flag {
	return []Flag{FlagValid, FlagInvalid, FlagBelowThreshold, FlagAboveThreshold}
}

func (f Flag) String() string {
	switch f {
	case FlagValid:
		return "VALID"
	case FlagInvalid:
		return "INVALID"
	case FlagBelowThreshold:
		return "BELOW_THRESHOLD"
	case FlagAboveThreshold:
		return "ABOVE_THRESHOLD"
	}
	return fmt.Sprintf("FLAG(%d)", int(f))
}

// ParseFlag converts a flag name (case-insensitive) back to a Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VALID":
		return FlagValid, nil
	case "INVALID":
		return FlagInvalid, nil
	case "BELOW_THRESHOLD":
		return FlagBelowThreshold, nil
	case "ABOVE_THRESHOLD":
		return FlagAboveThreshold, nil
	}
	return FlagValid, fmt.Errorf("unknown flag %q", s)
}

// MarshalText implements encoding.TextMarshaler so flags round-trip
// through YAML and JSON configuration files by name.
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Flag) UnmarshalText(text []byte) error {
	parsed, err := ParseFlag(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
