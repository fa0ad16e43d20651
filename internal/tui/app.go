// Package tui is the terminal dashboard.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/networth/internal/networth"
	"github.com/simonvc/networth/internal/series"
)

// Dashboard is what the terminal dashboard reads and writes through.
type Dashboard interface {
	Overview(ctx context.Context) (*networth.Overview, error)
	Chart(ctx context.Context) (*series.Chart, error)
	Transactions(ctx context.Context, limit int) ([]networth.TransactionLine, error)
	Portfolio(ctx context.Context, id int64) (*networth.PortfolioView, error)
	AddAsset(ctx context.Context, portfolioID int64, ticker string, quantity float64) error
	Trade(ctx context.Context, portfolioID int64, ticker, tradeType string, quantity int) error
}

type mode int

const (
	modeOverview mode = iota
	modeChart
	modeTransactions
	modePortfolio
	modeAssetForm
	modeTradeForm
)

var tabModes = []mode{modeOverview, modeChart, modeTransactions}

func tabLabel(m mode) string {
	switch m {
	case modeOverview:
		return "Overview"
	case modeChart:
		return "Net Worth"
	case modeTransactions:
		return "Transactions"
	default:
		return ""
	}
}

type App struct {
	dash          Dashboard
	mode          mode
	tabIndex      int
	width, height int
	statusMsg     string

	overview  overviewModel
	chart     chartModel
	txnList   txnListModel
	detail    portfolioDetailModel
	assetForm assetFormModel
	tradeForm tradeFormModel
}

func NewApp(d Dashboard) *App {
	return &App{
		dash: d,
		mode: modeOverview,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.overview.init(a.dash),
		a.chart.init(a.dash),
		a.txnList.init(a.dash),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
		a.overview.width, a.overview.height = msg.Width, msg.Height-6
		a.chart.width, a.chart.height = msg.Width, msg.Height-6
		a.txnList.width, a.txnList.height = msg.Width, msg.Height-6
		a.detail.width, a.detail.height = msg.Width, msg.Height-6
		a.assetForm.width = msg.Width
		a.tradeForm.width = msg.Width
		return a, nil
	}

	// Loads fired from Init land here whichever view is active.
	switch msg.(type) {
	case overviewLoadedMsg:
		var cmd tea.Cmd
		a.overview, cmd = a.overview.update(msg)
		return a, cmd
	case chartLoadedMsg:
		var cmd tea.Cmd
		a.chart, cmd = a.chart.update(msg)
		return a, cmd
	case txnsLoadedMsg:
		var cmd tea.Cmd
		a.txnList, cmd = a.txnList.update(msg)
		return a, cmd
	case portfolioLoadedMsg:
		var cmd tea.Cmd
		a.detail, cmd = a.detail.update(msg)
		return a, cmd
	}

	// Forms receive every message while open.
	if a.mode == modeAssetForm {
		var cmd tea.Cmd
		a.assetForm, cmd = a.assetForm.update(msg, a.dash)
		if a.assetForm.done {
			return a, a.closeForm(a.assetForm.statusMsg)
		}
		if a.assetForm.cancelled {
			a.mode = modePortfolio
			a.statusMsg = "Add asset cancelled"
		}
		return a, cmd
	}
	if a.mode == modeTradeForm {
		var cmd tea.Cmd
		a.tradeForm, cmd = a.tradeForm.update(msg, a.dash)
		if a.tradeForm.done {
			return a, a.closeForm(a.tradeForm.statusMsg)
		}
		if a.tradeForm.cancelled {
			a.mode = modePortfolio
			a.statusMsg = "Trade cancelled"
		}
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, nil

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, nil

		case key.Matches(msg, keys.Refresh):
			a.statusMsg = ""
			return a, a.refresh()

		case key.Matches(msg, keys.Escape):
			if a.mode == modePortfolio {
				a.mode = modeOverview
			}
			return a, nil

		case key.Matches(msg, keys.Enter):
			if a.mode == modeOverview {
				if id, ok := a.overview.selectedID(); ok {
					a.mode = modePortfolio
					return a, a.detail.init(a.dash, id)
				}
			}
			return a, nil

		case key.Matches(msg, keys.AddAsset):
			if a.mode == modePortfolio && a.detail.data != nil {
				a.mode = modeAssetForm
				a.assetForm = newAssetForm(a.detail.data.Portfolio)
				return a, nil
			}

		case key.Matches(msg, keys.Trade):
			if a.mode == modePortfolio && a.detail.data != nil {
				a.mode = modeTradeForm
				a.tradeForm = newTradeForm(a.detail.data.Portfolio)
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.mode {
	case modeOverview:
		a.overview, cmd = a.overview.update(msg)
	case modeChart:
		a.chart, cmd = a.chart.update(msg)
	case modeTransactions:
		a.txnList, cmd = a.txnList.update(msg)
	case modePortfolio:
		a.detail, cmd = a.detail.update(msg)
	}
	return a, cmd
}

// closeForm returns to the manage view and reloads everything a mutation
// can change.
func (a *App) closeForm(status string) tea.Cmd {
	a.mode = modePortfolio
	a.statusMsg = status
	return tea.Batch(
		a.detail.init(a.dash, a.detail.id),
		a.overview.init(a.dash),
		a.chart.init(a.dash),
		a.txnList.init(a.dash),
	)
}

func (a *App) refresh() tea.Cmd {
	switch a.mode {
	case modeOverview:
		return a.overview.init(a.dash)
	case modeChart:
		return a.chart.init(a.dash)
	case modeTransactions:
		return a.txnList.init(a.dash)
	case modePortfolio:
		return a.detail.init(a.dash, a.detail.id)
	}
	return nil
}

func (a *App) View() string {
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex && a.mode != modeAssetForm && a.mode != modeTradeForm {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	var content, help string
	switch a.mode {
	case modeOverview:
		content = a.overview.view()
		help = "tab:switch  enter:manage  r:refresh  q:quit"
	case modeChart:
		content = a.chart.view()
		help = "tab:switch  up/down:scroll  r:refresh  q:quit"
	case modeTransactions:
		content = a.txnList.view()
		help = "tab:switch  up/down:scroll  r:refresh  q:quit"
	case modePortfolio:
		content = a.detail.view()
		help = "a:add asset  t:buy/sell  r:refresh  esc:back  q:quit"
	case modeAssetForm:
		content = a.assetForm.view()
		help = "enter:next  esc:cancel"
	case modeTradeForm:
		content = a.tradeForm.view()
		help = "enter:next  esc:cancel"
	}

	status := ""
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		content,
		"",
		status,
		dimStyle.Render(help),
	)
}
