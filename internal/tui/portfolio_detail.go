package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/networth/internal/networth"
	"github.com/simonvc/networth/internal/portfolio"
	"github.com/simonvc/networth/internal/series"
)

// historyRows is how many of the latest dates the manage view shows.
const historyRows = 6

type portfolioLoadedMsg struct {
	id   int64
	data *networth.PortfolioView
	err  error
}

type portfolioDetailModel struct {
	id      int64
	data    *networth.PortfolioView
	history *series.Chart
	offset  int
	loading bool
	err     error
	width   int
	height  int
}

func (m *portfolioDetailModel) init(d Dashboard, id int64) tea.Cmd {
	if m.id != id {
		m.data = nil
		m.history = nil
	}
	m.id = id
	m.loading = true
	m.err = nil
	return func() tea.Msg {
		v, err := d.Portfolio(context.Background(), id)
		return portfolioLoadedMsg{id: id, data: v, err: err}
	}
}

func (m portfolioDetailModel) update(msg tea.Msg) (portfolioDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case portfolioLoadedMsg:
		// A late reply for a portfolio no longer on screen is dropped.
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		m.history = nil
		m.offset = 0
		if msg.data != nil && msg.data.History != nil {
			// A single validated series always aligns onto its own dates.
			m.history, _ = series.BuildAlignedChart([]series.Series{*msg.data.History})
		}

	case tea.KeyMsg:
		if m.data == nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.Down):
			if m.offset < len(m.data.Transactions)-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m *portfolioDetailModel) view() string {
	if m.loading && m.data == nil {
		return "Loading portfolio..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.data == nil {
		return dimStyle.Render("No portfolio selected.")
	}

	v := m.data
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", v.Portfolio.Name, v.Portfolio.Exchange)))
	b.WriteString("\n")

	value := "n/a"
	if v.Value != nil {
		value = portfolio.FormatMoney(decimal.NewFromFloat(*v.Value))
	}
	yearly := "n/a"
	if v.YearlyChange != nil {
		yearly = signed(*v.YearlyChange, portfolio.FormatPercent(*v.YearlyChange))
	}
	weekly := "n/a"
	if v.WeeklyAverage != nil {
		weekly = signed(*v.WeeklyAverage, portfolio.FormatPercent(*v.WeeklyAverage))
	}
	cards := []string{
		labelStyle.Render("Value") + value,
		labelStyle.Render("Yearly change") + yearly,
		labelStyle.Render("Weekly average") + weekly,
		labelStyle.Render("Stocks") + fmt.Sprint(v.StockCount()),
	}
	b.WriteString(cardStyle.Render(strings.Join(cards, "\n")))
	b.WriteString("\n\n")

	b.WriteString(m.historyView())

	b.WriteString(titleStyle.Render("Holdings"))
	b.WriteString("\n")
	if len(v.Assets) == 0 {
		b.WriteString(dimStyle.Render("  No holdings. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		changes := make(map[string]float64, len(v.Weekly))
		for _, w := range v.Weekly {
			changes[portfolio.NormalizeTicker(w.Ticker)] = w.ChangePct
		}
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-10s %12s %10s %8s", "TICKER", "QTY", "WEEKLY", "SHARE")))
		b.WriteString("\n")
		for _, sh := range portfolio.Composition(v.Assets) {
			change := fmt.Sprintf("%10s", "n/a")
			if pct, ok := changes[sh.Ticker]; ok {
				change = signed(pct, fmt.Sprintf("%10s", portfolio.FormatPercent(pct)))
			}
			b.WriteString(fmt.Sprintf("  %-10s %12s %s %7.1f%%  %s\n",
				sh.Ticker, formatQuantity(sh.Quantity), change, sh.Pct, dimStyle.Render(valueBar(sh.Pct, 100, 20))))
		}
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Transactions"))
	b.WriteString("\n")
	if len(v.Transactions) == 0 {
		b.WriteString(dimStyle.Render("  No transactions yet."))
		b.WriteString("\n")
		return b.String()
	}
	rows := m.height - 14 - historyRows - len(v.Assets)
	if rows < 3 {
		rows = 3
	}
	end := m.offset + rows
	if end > len(v.Transactions) {
		end = len(v.Transactions)
	}
	for _, t := range v.Transactions[m.offset:end] {
		b.WriteString("  " + transactionLine(t))
		b.WriteString("\n")
	}
	if end < len(v.Transactions) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(v.Transactions)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *portfolioDetailModel) historyView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Value history"))
	b.WriteString("\n")
	if m.history == nil || len(m.history.Axis) == 0 {
		b.WriteString(dimStyle.Render("  No history available."))
		b.WriteString("\n\n")
		return b.String()
	}
	end := len(m.history.Axis)
	b.WriteString(renderChartTable(m.history, max(0, end-historyRows), end, m.width))
	b.WriteString("\n")
	return b.String()
}
