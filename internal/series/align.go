package series

import (
	"fmt"
	"sort"
)

// BuildUnionAxis returns the ascending union of every date in series. It never
// returns nil, so an all-empty input renders as an empty chart.
func BuildUnionAxis(series []Series) Axis {
	seen := make(map[string]struct{})
	for _, s := range series {
		for _, smp := range s.Samples {
			seen[smp.Date] = struct{}{}
		}
	}

	axis := make(Axis, 0, len(seen))
	for d := range seen {
		axis = append(axis, d)
	}
	sort.Strings(axis)
	return axis
}

// Align reindexes s onto axis. Dates before the first sample are Absent; later
// gaps carry the most recent sample forward. Every sample date of s must be in
// axis, otherwise ErrAxisMismatch is returned.
func Align(s Series, axis Axis) (Aligned, error) {
	out := Aligned{Name: s.Name, Values: make([]Value, len(axis))}

	last := Absent
	next := 0
	for i, d := range axis {
		if next < len(s.Samples) {
			smp := s.Samples[next]
			if smp.Date < d {
				// The axis moved past a sample without visiting it.
				return Aligned{}, fmt.Errorf("%w: %s has %s", ErrAxisMismatch, s.Name, smp.Date)
			}
			if smp.Date == d {
				last = Of(smp.Value)
				next++
			}
		}
		out.Values[i] = last
	}
	if next < len(s.Samples) {
		return Aligned{}, fmt.Errorf("%w: %s has %s", ErrAxisMismatch, s.Name, s.Samples[next].Date)
	}
	return out, nil
}

// Rejection records a series excluded from a chart.
type Rejection struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// Chart is a set of series aligned onto one shared axis.
type Chart struct {
	Axis     Axis        `json:"axis"`
	Aligned  []Aligned   `json:"aligned"`
	Rejected []Rejection `json:"-"`
}

// BuildAlignedChart validates every series, drops the malformed ones into
// Rejected, computes the union axis of the rest and aligns each against it.
// Input order is preserved. An axis mismatch aborts the build.
func BuildAlignedChart(series []Series) (*Chart, error) {
	valid := make([]Series, 0, len(series))
	c := &Chart{}
	for _, s := range series {
		if err := Validate(s); err != nil {
			c.Rejected = append(c.Rejected, Rejection{Name: s.Name, Err: err})
			continue
		}
		valid = append(valid, s)
	}

	c.Axis = BuildUnionAxis(valid)
	c.Aligned = make([]Aligned, 0, len(valid))
	for _, s := range valid {
		a, err := Align(s, c.Axis)
		if err != nil {
			return nil, fmt.Errorf("align %s: %w", s.Name, err)
		}
		c.Aligned = append(c.Aligned, a)
	}
	return c, nil
}
