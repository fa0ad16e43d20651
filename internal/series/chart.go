package series

// Dataset is one line of the rendered chart.
type Dataset struct {
	Label string  `json:"label"`
	Data  []Value `json:"data"`
}

// ChartData is the payload handed to the chart widget. Absent points encode
// as null and are drawn as gaps.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Datasets converts c to the chart widget payload.
func (c *Chart) Datasets() ChartData {
	data := ChartData{
		Labels:   append([]string{}, c.Axis...),
		Datasets: make([]Dataset, 0, len(c.Aligned)),
	}
	for _, a := range c.Aligned {
		data.Datasets = append(data.Datasets, Dataset{Label: a.Name, Data: a.Values})
	}
	return data
}

// Total sums the present values of every aligned series at each axis position.
// A position where no series has data yet is Absent.
func (c *Chart) Total() []Value {
	total := make([]Value, len(c.Axis))
	for _, a := range c.Aligned {
		for i, v := range a.Values {
			if !v.Present {
				continue
			}
			total[i] = Of(total[i].Amount + v.Amount)
		}
	}
	return total
}
