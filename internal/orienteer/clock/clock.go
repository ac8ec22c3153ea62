// Package clock provides seconds-within-day arithmetic and the H:MM:SS /
// M:SS rendering shared by the receipt engine and the CLI.
package clock

import "fmt"

// SecondsPerDay bounds the day-seconds domain used throughout the core
// (0 <= t < 86400).
const SecondsPerDay = 86400

// Format renders seconds as "h:MM:SS" when hours > 0, else "M:SS". A nil
// duration formats as the empty string.
func Format(seconds *int) string {
	if seconds == nil {
		return ""
	}
	return FormatSeconds(*seconds)
}

// FormatSeconds renders a non-pointer duration the same way Format does.
func FormatSeconds(seconds int) string {
	neg := seconds < 0
	s := seconds
	if neg {
		s = -s
	}
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	var out string
	if h > 0 {
		out = fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	} else {
		out = fmt.Sprintf("%d:%02d", m, sec)
	}
	if neg {
		return "-" + out
	}
	return out
}

// SafeSub returns a-b, or nil if either operand is nil.
func SafeSub(a, b *int) *int {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}

// SafeDivPace computes a pace in seconds-per-kilometre from a leg time and a
// leg length in metres, rounding to the nearest second. Returns nil if the
// leg time is absent or the leg length is not positive.
func SafeDivPace(legSeconds *int, legLengthMetres *int) *int {
	if legSeconds == nil || legLengthMetres == nil || *legLengthMetres <= 0 {
		return nil
	}
	pace := int((int64(*legSeconds)*1000 + int64(*legLengthMetres)/2) / int64(*legLengthMetres))
	return &pace
}

// Max returns the greater of two ints.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MaxZero returns max(0, v) — used for loss-vs-field-best, never negative.
func MaxZero(v int) int {
	return Max(0, v)
}
