package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/networth/internal/networth"
	"github.com/simonvc/networth/internal/portfolio"
	"github.com/simonvc/networth/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboard struct {
	overview *networth.Overview
	chart    *series.Chart
	view     *networth.PortfolioView
	addErr   error

	added  []string
	trades []string
}

func (s *stubDashboard) Overview(context.Context) (*networth.Overview, error) {
	return s.overview, nil
}

func (s *stubDashboard) Chart(context.Context) (*series.Chart, error) {
	return s.chart, nil
}

func (s *stubDashboard) Transactions(context.Context, int) ([]networth.TransactionLine, error) {
	return nil, nil
}

func (s *stubDashboard) Portfolio(_ context.Context, id int64) (*networth.PortfolioView, error) {
	return s.view, nil
}

func (s *stubDashboard) AddAsset(_ context.Context, _ int64, ticker string, _ float64) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, ticker)
	return nil
}

func (s *stubDashboard) Trade(_ context.Context, _ int64, ticker, tradeType string, _ int) error {
	s.trades = append(s.trades, tradeType+" "+ticker)
	return nil
}

func newStub() *stubDashboard {
	isa := portfolio.Portfolio{ID: 7, Name: "ISA", Exchange: "LSE"}
	value := 110.0
	return &stubDashboard{
		overview: &networth.Overview{
			Rows:     []networth.Row{{Portfolio: isa, Value: &value}},
			NetWorth: decimal.NewFromInt(110),
		},
		view: &networth.PortfolioView{Portfolio: isa, Value: &value},
	}
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// step feeds msg to the app and runs any returned command once, feeding its
// result back in.
func step(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	if cmd == nil {
		return
	}
	if out := cmd(); out != nil {
		if _, isBatch := out.(tea.BatchMsg); !isBatch {
			a.Update(out)
		}
	}
}

func TestRenderChartTable_AbsentAsDash(t *testing.T) {
	chart, err := series.BuildAlignedChart([]series.Series{
		{Name: "ISA", Samples: []series.Sample{{Date: "2024-01-01", Value: 100}, {Date: "2024-01-03", Value: 110}}},
		{Name: "Pension", Samples: []series.Sample{{Date: "2024-01-02", Value: 50}}},
	})
	require.NoError(t, err)

	out := renderChartTable(chart, 0, len(chart.Axis), 80)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Header text, its bottom border, then one line per date.
	require.Len(t, lines, 5)

	first := strings.Fields(lines[2])
	assert.Equal(t, "2024-01-01", first[0])
	assert.Equal(t, "100.00", first[1])
	assert.Equal(t, "-", first[2])
	assert.Equal(t, "100.00", first[3])

	last := strings.Fields(lines[4])
	assert.Equal(t, []string{"2024-01-03", "110.00", "50.00", "160.00"}, last[:4])
}

func TestApp_TabsCycle(t *testing.T) {
	a := NewApp(newStub())
	step(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, modeChart, a.mode)
	step(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, modeTransactions, a.mode)
	step(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, modeOverview, a.mode)
	step(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, modeTransactions, a.mode)
}

func TestApp_ChartViewShowsGap(t *testing.T) {
	stub := newStub()
	chart, err := series.BuildAlignedChart([]series.Series{
		{Name: "ISA", Samples: []series.Sample{{Date: "2024-01-02", Value: 5}}},
		{Name: "Cash", Samples: []series.Sample{{Date: "2024-01-01", Value: 1}}},
	})
	require.NoError(t, err)
	stub.chart = chart

	a := NewApp(stub)
	step(t, a, chartLoadedMsg{chart: chart})
	step(t, a, tea.KeyMsg{Type: tea.KeyTab})

	view := a.View()
	assert.Contains(t, view, "Net worth over time")
	assert.Contains(t, view, "2024-01-01")
	assert.Regexp(t, `2024-01-01\s+-\s+1\.00`, view)
}

func TestApp_OpenPortfolioAndAddAsset(t *testing.T) {
	stub := newStub()
	a := NewApp(stub)

	step(t, a, overviewLoadedMsg{overview: stub.overview})
	assert.Contains(t, a.View(), "$110.00")

	step(t, a, enter)
	require.Equal(t, modePortfolio, a.mode)
	require.NotNil(t, a.detail.data)
	assert.Contains(t, a.View(), "ISA (LSE)")

	step(t, a, keyRunes("a"))
	require.Equal(t, modeAssetForm, a.mode)

	step(t, a, keyRunes("vwrl"))
	step(t, a, enter)
	require.Equal(t, assetStepQuantity, a.assetForm.step)

	step(t, a, keyRunes("abc"))
	step(t, a, enter)
	assert.ErrorIs(t, a.assetForm.err, portfolio.ErrInvalidQuantity)

	a.assetForm.quantity.SetValue("3.5")
	step(t, a, enter)
	require.Equal(t, assetStepConfirm, a.assetForm.step)

	step(t, a, keyRunes("y"))
	assert.Equal(t, []string{"VWRL"}, stub.added)
	assert.Equal(t, modePortfolio, a.mode)
	assert.Equal(t, "Added VWRL to ISA", a.statusMsg)
}

func TestApp_AddAssetErrorKeepsFormOpen(t *testing.T) {
	stub := newStub()
	stub.addErr = errors.New("server error (400): already held")
	a := NewApp(stub)
	step(t, a, overviewLoadedMsg{overview: stub.overview})
	step(t, a, enter)
	step(t, a, keyRunes("a"))
	step(t, a, keyRunes("AAPL"))
	step(t, a, enter)
	step(t, a, keyRunes("1"))
	step(t, a, enter)
	step(t, a, enter)

	assert.Equal(t, modeAssetForm, a.mode)
	assert.Contains(t, a.View(), "already held")

	step(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modePortfolio, a.mode)
	assert.Equal(t, "Add asset cancelled", a.statusMsg)
}

func TestApp_TradeSell(t *testing.T) {
	stub := newStub()
	a := NewApp(stub)
	step(t, a, overviewLoadedMsg{overview: stub.overview})
	step(t, a, enter)
	step(t, a, keyRunes("t"))
	require.Equal(t, modeTradeForm, a.mode)

	step(t, a, keyRunes("aapl"))
	step(t, a, enter)
	step(t, a, tea.KeyMsg{Type: tea.KeyDown})
	step(t, a, enter)
	step(t, a, keyRunes("2"))
	step(t, a, enter)
	step(t, a, keyRunes("y"))

	assert.Equal(t, []string{"SELL AAPL"}, stub.trades)
	assert.Equal(t, modePortfolio, a.mode)
	assert.Equal(t, "SELL 2 AAPL in ISA", a.statusMsg)
}

func TestApp_PortfolioShowsHistoryAndComposition(t *testing.T) {
	stub := newStub()
	stub.view.History = &series.Series{Name: "ISA", Samples: []series.Sample{
		{Date: "2024-01-01", Value: 100},
		{Date: "2024-02-01", Value: 110},
	}}
	stub.view.Assets = []portfolio.Asset{
		{ID: 1, PortfolioID: 7, Ticker: "vwrl", Quantity: 3},
		{ID: 2, PortfolioID: 7, Ticker: "AAPL", Quantity: 1},
	}
	a := NewApp(stub)
	step(t, a, overviewLoadedMsg{overview: stub.overview})
	step(t, a, enter)
	require.Equal(t, modePortfolio, a.mode)

	view := a.View()
	assert.Contains(t, view, "Value history")
	assert.Regexp(t, `2024-02-01\s+110\.00\s+110\.00`, view)
	assert.Regexp(t, `VWRL\s+3\s+n/a\s+75\.0%`, view)
	assert.Regexp(t, `AAPL\s+1\s+n/a\s+25\.0%`, view)
}

func TestApp_PortfolioWithoutHistory(t *testing.T) {
	stub := newStub()
	a := NewApp(stub)
	step(t, a, overviewLoadedMsg{overview: stub.overview})
	step(t, a, enter)

	assert.Contains(t, a.View(), "No history available.")
}
