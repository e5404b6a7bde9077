// Package transform turns raw dump fields into classified values ready for rendering.
package transform

import (
	"strconv"
	"strings"
)

// NullMarker is how a dump spells SQL NULL.
const NullMarker = `\N`

// Kind tells a dialect how to render a value.
type Kind int

const (
	Null Kind = iota
	Empty
	EpochMillis
	Timestamp
	Text
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Empty:
		return "empty"
	case EpochMillis:
		return "epoch-millis"
	case Timestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// Value is one classified field.
type Value struct {
	Kind Kind
	Raw  string
	// Lossy is set when a non-empty timestamp field could not be understood and
	// was turned into NULL.
	Lossy bool
}

var timestampColumns = map[string]bool{
	"created_at":  true,
	"modified_at": true,
	"deleted_at":  true,
}

// IsTimestampColumn reports whether the (mapped) column holds timestamps.
func IsTimestampColumn(name string) bool {
	return timestampColumns[name]
}

// Classify decides how raw, stored in column, must be written to the target.
func Classify(column, raw string) Value {
	if raw == NullMarker {
		return Value{Kind: Null, Raw: raw}
	}

	if IsTimestampColumn(column) {
		switch {
		case raw == "":
			return Value{Kind: Null, Raw: raw}
		case allDigits(raw) && len(raw) >= 13:
			return Value{Kind: EpochMillis, Raw: raw}
		case strings.Contains(raw, "T") && len(raw) > 10:
			return Value{Kind: Timestamp, Raw: raw}
		default:
			return Value{Kind: Null, Raw: raw, Lossy: true}
		}
	}

	if raw == "" {
		return Value{Kind: Empty}
	}
	return Value{Kind: Text, Raw: raw}
}

// PadDateFragment left-pads single-digit values with one space, matching the
// fixed-width encoding of the legacy inspection date fields.
func PadDateFragment(v string) string {
	trimmed := strings.TrimSpace(v)
	if !allDigits(trimmed) || strings.HasPrefix(v, " ") {
		return v
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n >= 10 {
		return v
	}
	return " " + trimmed
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
