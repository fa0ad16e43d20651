package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/networth/internal/portfolio"
)

type tradeStep int

const (
	tradeStepTicker tradeStep = iota
	tradeStepType
	tradeStepQuantity
	tradeStepConfirm
)

type tradePlacedMsg struct {
	ticker string
	tt     portfolio.TradeType
	qty    int
	err    error
}

type tradeFormModel struct {
	portfolio portfolio.Portfolio
	step      tradeStep
	ticker    textinput.Model
	quantity  textinput.Model
	isBuy     bool
	submitted bool

	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newTradeForm(p portfolio.Portfolio) tradeFormModel {
	tickerInput := textinput.New()
	tickerInput.Placeholder = "e.g. AAPL"
	tickerInput.CharLimit = 12
	tickerInput.Focus()

	qtyInput := textinput.New()
	qtyInput.Placeholder = "whole shares, e.g. 5"
	qtyInput.CharLimit = 9

	return tradeFormModel{
		portfolio: p,
		step:      tradeStepTicker,
		ticker:    tickerInput,
		quantity:  qtyInput,
		isBuy:     true,
	}
}

func (m *tradeFormModel) tradeType() portfolio.TradeType {
	if m.isBuy {
		return portfolio.TradeBuy
	}
	return portfolio.TradeSell
}

func (m tradeFormModel) update(msg tea.Msg, d Dashboard) (tradeFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tradePlacedMsg:
		m.submitted = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("%s %d %s in %s", msg.tt, msg.qty, msg.ticker, m.portfolio.Name)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}
		switch m.step {
		case tradeStepTicker:
			return m.updateTicker(msg)
		case tradeStepType:
			return m.updateType(msg)
		case tradeStepQuantity:
			return m.updateQuantity(msg)
		case tradeStepConfirm:
			return m.updateConfirm(msg, d)
		}
	}
	return m, nil
}

func (m tradeFormModel) updateTicker(msg tea.KeyMsg) (tradeFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		if portfolio.NormalizeTicker(m.ticker.Value()) == "" {
			m.err = portfolio.ErrEmptyTicker
			return m, nil
		}
		m.err = nil
		m.step = tradeStepType
		m.ticker.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ticker, cmd = m.ticker.Update(msg)
	return m, cmd
}

func (m tradeFormModel) updateType(msg tea.KeyMsg) (tradeFormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		m.isBuy = !m.isBuy
	case key.Matches(msg, keys.Enter):
		m.step = tradeStepQuantity
		m.quantity.SetValue("")
		m.quantity.Focus()
	}
	return m, nil
}

func (m tradeFormModel) updateQuantity(msg tea.KeyMsg) (tradeFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		if _, err := m.parsedQuantity(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.step = tradeStepConfirm
		m.quantity.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.quantity, cmd = m.quantity.Update(msg)
	return m, cmd
}

func (m tradeFormModel) updateConfirm(msg tea.KeyMsg, d Dashboard) (tradeFormModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.portfolio.ID
		ticker := portfolio.NormalizeTicker(m.ticker.Value())
		tt := m.tradeType()
		qty, _ := m.parsedQuantity()
		m.submitted = true
		m.err = nil
		return m, func() tea.Msg {
			err := d.Trade(context.Background(), id, ticker, string(tt), qty)
			return tradePlacedMsg{ticker: ticker, tt: tt, qty: qty, err: err}
		}
	case "n", "N":
		m.cancelled = true
	}
	return m, nil
}

// parsedQuantity accepts whole share counts only; the trade endpoint takes
// an integer quantity.
func (m *tradeFormModel) parsedQuantity() (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(m.quantity.Value()))
	if err != nil || q <= 0 {
		return 0, portfolio.ErrInvalidQuantity
	}
	return q, nil
}

func (m *tradeFormModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Trade in " + m.portfolio.Name))
	b.WriteString("\n\n")

	ticker := portfolio.NormalizeTicker(m.ticker.Value())
	switch m.step {
	case tradeStepTicker:
		b.WriteString("  Enter ticker:\n\n")
		b.WriteString("  " + m.ticker.View() + "\n")
	case tradeStepType:
		b.WriteString(fmt.Sprintf("  Ticker: %s\n", ticker))
		b.WriteString("  Buy or sell?\n\n")
		if m.isBuy {
			b.WriteString(selectedStyle.Render("  > Buy") + "\n")
			b.WriteString("    Sell\n")
		} else {
			b.WriteString("    Buy\n")
			b.WriteString(selectedStyle.Render("  > Sell") + "\n")
		}
	case tradeStepQuantity:
		b.WriteString(fmt.Sprintf("  %s %s\n", m.tradeType(), ticker))
		b.WriteString("  Enter quantity:\n\n")
		b.WriteString("  " + m.quantity.View() + "\n")
	case tradeStepConfirm:
		b.WriteString(labelStyle.Render("  Ticker") + ticker + "\n")
		b.WriteString(labelStyle.Render("  Type") + string(m.tradeType()) + "\n")
		b.WriteString(labelStyle.Render("  Quantity") + strings.TrimSpace(m.quantity.Value()) + "\n\n")
		if m.submitted {
			b.WriteString(dimStyle.Render("  Placing trade..."))
		} else {
			b.WriteString("  Place this trade? (y/n)")
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+m.err.Error()) + "\n")
	}
	return b.String()
}
