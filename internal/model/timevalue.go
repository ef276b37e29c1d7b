// Package model holds the typed records parsed from Slurm's JSON CLIs:
// jobs, nodes, fairshare entries, and scheduler statistics, plus the
// compound-state resolution tables shared by the UI and the one-shot
// commands.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimeValue is Slurm's optional/unlimited numeric encoding. A field may
// arrive as a bare number, as {"set": bool, "infinite": bool, "number": N},
// or be absent entirely. The three cases are kept distinct: callers must
// not treat an absent or infinite value as zero.
type TimeValue struct {
	set      bool
	infinite bool
	number   int64
}

// TimeValueOf returns a set, finite TimeValue.
func TimeValueOf(n int64) TimeValue {
	return TimeValue{set: true, number: n}
}

// InfiniteTime returns the explicit "no limit" sentinel.
func InfiniteTime() TimeValue {
	return TimeValue{set: true, infinite: true}
}

// IsSet reports whether the value carries data (finite or infinite).
func (t TimeValue) IsSet() bool { return t.set }

// IsInfinite reports whether the value is the explicit unlimited sentinel.
func (t TimeValue) IsInfinite() bool { return t.set && t.infinite }

// Value returns the finite number and true, or 0 and false when the value
// is absent or infinite.
func (t TimeValue) Value() (int64, bool) {
	if t.set && !t.infinite {
		return t.number, true
	}
	return 0, false
}

// Time interprets a finite value as a Unix timestamp. Slurm reports 0 for
// timestamps it has not assigned yet, so 0 counts as unknown.
func (t TimeValue) Time() (time.Time, bool) {
	n, ok := t.Value()
	if !ok || n <= 0 {
		return time.Time{}, false
	}
	return time.Unix(n, 0), true
}

func (t TimeValue) String() string {
	switch {
	case !t.set:
		return "-"
	case t.infinite:
		return "infinite"
	default:
		return fmt.Sprintf("%d", t.number)
	}
}

type rawTimeValue struct {
	Set      bool  `json:"set"`
	Infinite bool  `json:"infinite"`
	Number   int64 `json:"number"`
}

// UnmarshalJSON accepts the three encodings Slurm emits for the same
// field depending on version: a bare number, the structured object, or
// null. A missing field leaves the zero value, which reads as absent.
func (t *TimeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = TimeValue{}
		return nil
	}
	if data[0] == '{' {
		var raw rawTimeValue
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("time value object: %w", err)
		}
		*t = TimeValue{set: raw.Set, infinite: raw.Infinite, number: raw.Number}
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("time value number: %w", err)
	}
	*t = TimeValue{set: true, number: n}
	return nil
}

// MarshalJSON always writes the structured form so exports round-trip.
func (t TimeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawTimeValue{Set: t.set, Infinite: t.infinite, Number: t.number})
}

// FloatValue is the floating-point sibling of TimeValue, used by sshare
// for normalized shares and usage.
type FloatValue struct {
	Set      bool    `json:"set"`
	Infinite bool    `json:"infinite"`
	Number   float64 `json:"number"`
}

// Value returns the finite number and true, or 0 and false otherwise.
func (f FloatValue) Value() (float64, bool) {
	if f.Set && !f.Infinite {
		return f.Number, true
	}
	return 0, false
}

func (f *FloatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FloatValue{}
		return nil
	}
	if data[0] == '{' {
		type alias FloatValue
		var raw alias
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("float value object: %w", err)
		}
		*f = FloatValue(raw)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("float value number: %w", err)
	}
	*f = FloatValue{Set: true, Number: n}
	return nil
}
