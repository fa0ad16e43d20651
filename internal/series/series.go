package series

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// DateFormat is the calendar-day layout of sample dates. Lexicographic order of
// strings in this layout is chronological order.
const DateFormat = "2006-01-02"

// Sample is one observation of a series.
type Sample struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is one portfolio's value history, ascending by date.
type Series struct {
	Name    string   `json:"name"`
	Samples []Sample `json:"samples"`
}

// First returns the earliest sample, if any.
func (s Series) First() (Sample, bool) {
	if len(s.Samples) == 0 {
		return Sample{}, false
	}
	return s.Samples[0], true
}

// Validate reports whether s can be aligned: dates must be well-formed and
// strictly ascending, values finite and non-negative.
func Validate(s Series) error {
	for i, smp := range s.Samples {
		if _, err := time.Parse(DateFormat, smp.Date); err != nil {
			return fmt.Errorf("%w: %s: sample %d has invalid date %q", ErrMalformedSeries, s.Name, i, smp.Date)
		}
		if math.IsNaN(smp.Value) || math.IsInf(smp.Value, 0) {
			return fmt.Errorf("%w: %s: sample %d on %s is not a finite number", ErrMalformedSeries, s.Name, i, smp.Date)
		}
		if smp.Value < 0 {
			return fmt.Errorf("%w: %s: sample %d on %s is negative", ErrMalformedSeries, s.Name, i, smp.Date)
		}
		if i > 0 && smp.Date <= s.Samples[i-1].Date {
			return fmt.Errorf("%w: %s: date %s does not follow %s", ErrMalformedSeries, s.Name, smp.Date, s.Samples[i-1].Date)
		}
	}
	return nil
}

// Value is an aligned point: either a number or absent. The zero Value is
// absent, so a real zero is never confused with missing data.
type Value struct {
	Amount  float64
	Present bool
}

// Absent is the "no data yet" marker.
var Absent = Value{}

// Of returns a present value.
func Of(v float64) Value { return Value{Amount: v, Present: true} }

func (v Value) String() string {
	if !v.Present {
		return "-"
	}
	return strconv.FormatFloat(v.Amount, 'f', 2, 64)
}

// MarshalJSON encodes absent values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present {
		return []byte("null"), nil
	}
	return json.Marshal(v.Amount)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Absent
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Of(f)
	return nil
}

// Axis is the sorted, duplicate-free union of dates across a set of series.
type Axis []string

// Aligned is a series reindexed onto an Axis. len(Values) always equals the
// length of the axis it was aligned against.
type Aligned struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}
