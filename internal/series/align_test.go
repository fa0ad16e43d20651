package series

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(pairs ...any) []Sample {
	out := make([]Sample, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Sample{Date: pairs[i].(string), Value: float64(pairs[i+1].(int))})
	}
	return out
}

func TestBuildAlignedChart_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		series    []Series
		wantAxis  Axis
		wantValue [][]Value
	}{
		{
			name: "interleaved dates carry forward",
			series: []Series{
				{Name: "series1", Samples: samples("2024-01-01", 100, "2024-01-03", 110)},
				{Name: "series2", Samples: samples("2024-01-02", 50)},
			},
			wantAxis: Axis{"2024-01-01", "2024-01-02", "2024-01-03"},
			wantValue: [][]Value{
				{Of(100), Of(100), Of(110)},
				{Absent, Of(50), Of(50)},
			},
		},
		{
			name:      "no series",
			series:    nil,
			wantAxis:  Axis{},
			wantValue: [][]Value{},
		},
		{
			name:      "single sample",
			series:    []Series{{Name: "only", Samples: samples("2024-02-01", 42)}},
			wantAxis:  Axis{"2024-02-01"},
			wantValue: [][]Value{{Of(42)}},
		},
		{
			name: "disjoint dates",
			series: []Series{
				{Name: "series1", Samples: samples("2024-01-01", 10)},
				{Name: "series2", Samples: samples("2024-02-01", 20)},
			},
			wantAxis: Axis{"2024-01-01", "2024-02-01"},
			wantValue: [][]Value{
				{Of(10), Of(10)},
				{Absent, Of(20)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BuildAlignedChart(tt.series)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAxis, c.Axis)
			require.Len(t, c.Aligned, len(tt.wantValue))
			for i, want := range tt.wantValue {
				assert.Equal(t, tt.series[i].Name, c.Aligned[i].Name)
				assert.Equal(t, want, c.Aligned[i].Values)
			}
			assert.Empty(t, c.Rejected)
		})
	}
}

func TestBuildUnionAxis_CountsDistinctDates(t *testing.T) {
	in := []Series{
		{Name: "a", Samples: samples("2024-03-01", 1, "2024-03-05", 2, "2024-03-09", 3)},
		{Name: "b", Samples: samples("2024-03-05", 4, "2024-03-07", 5)},
		{Name: "c"},
	}
	axis := BuildUnionAxis(in)
	assert.Equal(t, Axis{"2024-03-01", "2024-03-05", "2024-03-07", "2024-03-09"}, axis)
}

func TestBuildUnionAxis_AllEmpty(t *testing.T) {
	axis := BuildUnionAxis([]Series{{Name: "a"}, {Name: "b"}})
	assert.NotNil(t, axis)
	assert.Empty(t, axis)
}

func TestAlign_ForwardFillAndLeadingGap(t *testing.T) {
	s := Series{Name: "p", Samples: samples("2024-01-03", 7, "2024-01-06", 0, "2024-01-08", 9)}
	axis := Axis{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09"}

	got, err := Align(s, axis)
	require.NoError(t, err)
	require.Len(t, got.Values, len(axis))
	assert.Equal(t, []Value{Absent, Absent, Of(7), Of(7), Of(0), Of(0), Of(9), Of(9)}, got.Values)
	// zero is data, not a gap
	assert.True(t, got.Values[4].Present)
}

func TestAlign_EmptySeries(t *testing.T) {
	got, err := Align(Series{Name: "empty"}, Axis{"2024-01-01", "2024-01-02"})
	require.NoError(t, err)
	assert.Equal(t, []Value{Absent, Absent}, got.Values)
}

func TestAlign_AxisMismatch(t *testing.T) {
	tests := []struct {
		name string
		s    Series
	}{
		{"between axis dates", Series{Name: "x", Samples: samples("2024-01-01", 1, "2024-01-02", 2)}},
		{"after last axis date", Series{Name: "x", Samples: samples("2024-01-03", 1, "2024-01-09", 2)}},
		{"before first axis date", Series{Name: "x", Samples: samples("2023-12-31", 1)}},
	}
	axis := Axis{"2024-01-01", "2024-01-03"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Align(tt.s, axis)
			assert.ErrorIs(t, err, ErrAxisMismatch)
		})
	}
}

func TestAlign_DoesNotMutateInput(t *testing.T) {
	s := Series{Name: "p", Samples: samples("2024-01-01", 1, "2024-01-03", 3)}
	before := append([]Sample{}, s.Samples...)
	_, err := Align(s, Axis{"2024-01-01", "2024-01-02", "2024-01-03"})
	require.NoError(t, err)
	assert.Equal(t, before, s.Samples)
}

func TestBuildAlignedChart_Idempotent(t *testing.T) {
	in := []Series{
		{Name: "a", Samples: samples("2024-01-01", 1, "2024-01-04", 4)},
		{Name: "b", Samples: samples("2024-01-02", 2, "2024-01-03", 3)},
	}
	first, err := BuildAlignedChart(in)
	require.NoError(t, err)
	second, err := BuildAlignedChart(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildAlignedChart_RejectsMalformedSeries(t *testing.T) {
	in := []Series{
		{Name: "good", Samples: samples("2024-01-01", 1, "2024-01-02", 2)},
		{Name: "unsorted", Samples: samples("2024-01-05", 1, "2024-01-04", 2)},
		{Name: "dupes", Samples: samples("2024-01-05", 1, "2024-01-05", 2)},
	}
	c, err := BuildAlignedChart(in)
	require.NoError(t, err)

	assert.Equal(t, Axis{"2024-01-01", "2024-01-02"}, c.Axis)
	require.Len(t, c.Aligned, 1)
	assert.Equal(t, "good", c.Aligned[0].Name)

	require.Len(t, c.Rejected, 2)
	assert.Equal(t, "unsorted", c.Rejected[0].Name)
	assert.Equal(t, "dupes", c.Rejected[1].Name)
	for _, r := range c.Rejected {
		assert.True(t, errors.Is(r.Err, ErrMalformedSeries))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		wantErr bool
	}{
		{"empty", nil, false},
		{"ascending", samples("2024-01-01", 1, "2024-01-02", 0), false},
		{"bad date", []Sample{{Date: "01/02/2024", Value: 1}}, true},
		{"negative", []Sample{{Date: "2024-01-01", Value: -1}}, true},
		{"descending", samples("2024-01-02", 1, "2024-01-01", 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Series{Name: tt.name, Samples: tt.samples})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSeries)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChart_DatasetsEncodeGapsAsNull(t *testing.T) {
	c, err := BuildAlignedChart([]Series{
		{Name: "series1", Samples: samples("2024-01-01", 10)},
		{Name: "series2", Samples: samples("2024-02-01", 20)},
	})
	require.NoError(t, err)

	data, err := json.Marshal(c.Datasets())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"labels": ["2024-01-01", "2024-02-01"],
		"datasets": [
			{"label": "series1", "data": [10, 10]},
			{"label": "series2", "data": [null, 20]}
		]
	}`, string(data))
}

func TestChart_DatasetsEmpty(t *testing.T) {
	c, err := BuildAlignedChart(nil)
	require.NoError(t, err)

	data, err := json.Marshal(c.Datasets())
	require.NoError(t, err)
	assert.JSONEq(t, `{"labels": [], "datasets": []}`, string(data))
}

func TestChart_Total(t *testing.T) {
	c, err := BuildAlignedChart([]Series{
		{Name: "a", Samples: samples("2024-01-02", 10)},
		{Name: "b", Samples: samples("2024-01-03", 5)},
	})
	require.NoError(t, err)
	c.Axis = append(Axis{"2024-01-01"}, c.Axis...)
	for i := range c.Aligned {
		c.Aligned[i].Values = append([]Value{Absent}, c.Aligned[i].Values...)
	}
	assert.Equal(t, []Value{Absent, Of(10), Of(15)}, c.Total())
}

func TestValue_JSONRoundTrip(t *testing.T) {
	var got []Value
	require.NoError(t, json.Unmarshal([]byte(`[null, 0, 1.5]`), &got))
	assert.Equal(t, []Value{Absent, Of(0), Of(1.5)}, got)
}
