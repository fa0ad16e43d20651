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

type assetStep int

const (
	assetStepTicker assetStep = iota
	assetStepQuantity
	assetStepConfirm
)

type assetAddedMsg struct {
	ticker string
	err    error
}

type assetFormModel struct {
	portfolio portfolio.Portfolio
	step      assetStep
	ticker    textinput.Model
	quantity  textinput.Model
	submitted bool

	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newAssetForm(p portfolio.Portfolio) assetFormModel {
	tickerInput := textinput.New()
	tickerInput.Placeholder = "e.g. AAPL"
	tickerInput.CharLimit = 12
	tickerInput.Focus()

	qtyInput := textinput.New()
	qtyInput.Placeholder = "e.g. 10"
	qtyInput.CharLimit = 20

	return assetFormModel{
		portfolio: p,
		step:      assetStepTicker,
		ticker:    tickerInput,
		quantity:  qtyInput,
	}
}

func (m assetFormModel) update(msg tea.Msg, d Dashboard) (assetFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case assetAddedMsg:
		m.submitted = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Added %s to %s", msg.ticker, m.portfolio.Name)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}
		switch m.step {
		case assetStepTicker:
			return m.updateTicker(msg)
		case assetStepQuantity:
			return m.updateQuantity(msg)
		case assetStepConfirm:
			return m.updateConfirm(msg, d)
		}
	}
	return m, nil
}

func (m assetFormModel) updateTicker(msg tea.KeyMsg) (assetFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		if portfolio.NormalizeTicker(m.ticker.Value()) == "" {
			m.err = portfolio.ErrEmptyTicker
			return m, nil
		}
		m.err = nil
		m.step = assetStepQuantity
		m.ticker.Blur()
		m.quantity.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.ticker, cmd = m.ticker.Update(msg)
	return m, cmd
}

func (m assetFormModel) updateQuantity(msg tea.KeyMsg) (assetFormModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		if _, err := m.parsedQuantity(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.step = assetStepConfirm
		m.quantity.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.quantity, cmd = m.quantity.Update(msg)
	return m, cmd
}

func (m assetFormModel) updateConfirm(msg tea.KeyMsg, d Dashboard) (assetFormModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.portfolio.ID
		ticker := portfolio.NormalizeTicker(m.ticker.Value())
		qty, _ := m.parsedQuantity()
		m.submitted = true
		m.err = nil
		return m, func() tea.Msg {
			err := d.AddAsset(context.Background(), id, ticker, qty)
			return assetAddedMsg{ticker: ticker, err: err}
		}
	case "n", "N":
		m.cancelled = true
	}
	return m, nil
}

func (m *assetFormModel) parsedQuantity() (float64, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(m.quantity.Value()), 64)
	if err != nil || q <= 0 {
		return 0, portfolio.ErrInvalidQuantity
	}
	return q, nil
}

func (m *assetFormModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add asset to " + m.portfolio.Name))
	b.WriteString("\n\n")

	switch m.step {
	case assetStepTicker:
		b.WriteString("  Enter ticker:\n\n")
		b.WriteString("  " + m.ticker.View() + "\n")
	case assetStepQuantity:
		b.WriteString(fmt.Sprintf("  Ticker: %s\n", portfolio.NormalizeTicker(m.ticker.Value())))
		b.WriteString("  Enter quantity:\n\n")
		b.WriteString("  " + m.quantity.View() + "\n")
	case assetStepConfirm:
		b.WriteString(labelStyle.Render("  Ticker") + portfolio.NormalizeTicker(m.ticker.Value()) + "\n")
		b.WriteString(labelStyle.Render("  Quantity") + strings.TrimSpace(m.quantity.Value()) + "\n\n")
		if m.submitted {
			b.WriteString(dimStyle.Render("  Saving..."))
		} else {
			b.WriteString("  Add this asset? (y/n)")
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+m.err.Error()) + "\n")
	}
	return b.String()
}
