package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/networth/internal/series"
)

type chartLoadedMsg struct {
	chart *series.Chart
	err   error
}

type chartModel struct {
	chart   *series.Chart
	offset  int // rows scrolled up from the latest date
	loading bool
	err     error
	width   int
	height  int
}

func (m *chartModel) init(d Dashboard) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		chart, err := d.Chart(context.Background())
		return chartLoadedMsg{chart: chart, err: err}
	}
}

func (m chartModel) update(msg tea.Msg) (chartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.chart = msg.chart
			m.offset = 0
		}

	case tea.KeyMsg:
		if m.chart == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.offset < len(m.chart.Axis)-m.visibleRows() {
				m.offset++
			}
		case key.Matches(msg, keys.Down):
			if m.offset > 0 {
				m.offset--
			}
		}
	}
	return m, nil
}

func (m *chartModel) visibleRows() int {
	n := m.height - 6
	if n < 1 {
		n = 20
	}
	return n
}

func (m *chartModel) view() string {
	if m.loading && m.chart == nil {
		return "Loading net worth history..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.chart == nil || len(m.chart.Axis) == 0 {
		return dimStyle.Render("No portfolio history available.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Net worth over time"))
	b.WriteString("\n")

	end := len(m.chart.Axis) - m.offset
	start := end - m.visibleRows()
	if start < 0 {
		start = 0
	}
	b.WriteString(renderChartTable(m.chart, start, end, m.width))

	for _, r := range m.chart.Rejected {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %s left out: %v", r.Name, r.Err)))
		b.WriteString("\n")
	}
	return b.String()
}

const chartColWidth = 12

// renderChartTable renders axis rows [start, end) with one column per aligned
// series, a total and a bar scaled to the largest total. Absent values show
// as "-".
func renderChartTable(c *series.Chart, start, end, width int) string {
	total := c.Total()

	var b strings.Builder
	header := fmt.Sprintf("  %-10s", "DATE")
	for _, a := range c.Aligned {
		header += fmt.Sprintf(" %*s", chartColWidth, truncate(a.Name, chartColWidth))
	}
	header += fmt.Sprintf(" %*s", chartColWidth, "TOTAL")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	peak := 0.0
	for _, v := range total {
		if v.Present && v.Amount > peak {
			peak = v.Amount
		}
	}
	barWidth := width - len(header) - 4

	for i := start; i < end; i++ {
		line := fmt.Sprintf("  %-10s", c.Axis[i])
		for _, a := range c.Aligned {
			line += fmt.Sprintf(" %*s", chartColWidth, cell(a.Values[i]))
		}
		line += fmt.Sprintf(" %*s", chartColWidth, cell(total[i]))
		if total[i].Present && peak > 0 {
			line += "  " + dimStyle.Render(valueBar(total[i].Amount, peak, barWidth))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func cell(v series.Value) string {
	if !v.Present {
		return v.String()
	}
	return fmt.Sprintf("%.2f", v.Amount)
}

func valueBar(value, peak float64, width int) string {
	if width < 10 {
		width = 10
	}
	if width > 40 {
		width = 40
	}
	filled := int(value / peak * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
