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
)

type overviewLoadedMsg struct {
	overview *networth.Overview
	err      error
}

type overviewModel struct {
	overview *networth.Overview
	cursor   int
	loading  bool
	err      error
	width    int
	height   int
}

func (m *overviewModel) init(d Dashboard) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		ov, err := d.Overview(context.Background())
		return overviewLoadedMsg{overview: ov, err: err}
	}
}

func (m overviewModel) update(msg tea.Msg) (overviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.overview = msg.overview
			if m.cursor >= len(m.overview.Rows) {
				m.cursor = 0
			}
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.overview != nil && m.cursor < len(m.overview.Rows)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *overviewModel) selectedID() (int64, bool) {
	if m.overview == nil || m.cursor < 0 || m.cursor >= len(m.overview.Rows) {
		return 0, false
	}
	return m.overview.Rows[m.cursor].Portfolio.ID, true
}

func (m *overviewModel) view() string {
	if m.loading && m.overview == nil {
		return "Loading portfolios..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.overview == nil || len(m.overview.Rows) == 0 {
		return dimStyle.Render("No portfolios found. Create one with 'networth portfolio create'.")
	}

	var b strings.Builder
	b.WriteString(cardStyle.Render(labelStyle.Render("Net worth") + portfolio.FormatMoney(m.overview.NetWorth)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Portfolios"))
	b.WriteString("\n")
	header := fmt.Sprintf("  %-24s %-8s %16s %10s", "NAME", "EXCHANGE", "VALUE", "WEEKLY")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for i, r := range m.overview.Rows {
		value := "n/a"
		if r.Value != nil {
			value = portfolio.FormatMoney(decimal.NewFromFloat(*r.Value))
		}
		weekly := fmt.Sprintf("%10s", "n/a")
		if r.WeeklyChange != nil {
			weekly = signed(*r.WeeklyChange, fmt.Sprintf("%10s", portfolio.FormatPercent(*r.WeeklyChange)))
		}
		name := truncate(r.Portfolio.Name, 24)
		line := fmt.Sprintf("%-24s %-8s %16s ", name, r.Portfolio.Exchange, value)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString(weekly)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Recent transactions"))
	b.WriteString("\n")
	if len(m.overview.Recent) == 0 {
		b.WriteString(dimStyle.Render("  No transactions yet."))
		b.WriteString("\n")
	}
	for _, t := range m.overview.Recent {
		b.WriteString("  " + transactionLine(t))
		b.WriteString("\n")
	}
	return b.String()
}

func transactionLine(t networth.TransactionLine) string {
	kind := upStyle.Render(fmt.Sprintf("%-4s", t.Type))
	if t.Type == portfolio.TradeSell {
		kind = downStyle.Render(fmt.Sprintf("%-4s", t.Type))
	}
	when := "-"
	if !t.DateTime.IsZero() {
		when = t.DateTime.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%-16s %s %-8s %10s  %s", when, kind, t.Ticker, formatQuantity(t.Quantity), truncate(t.Portfolio, 24))
}

func formatQuantity(q float64) string {
	return decimal.NewFromFloat(q).String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
