package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/networth/internal/networth"
)

type txnsLoadedMsg struct {
	txns []networth.TransactionLine
	err  error
}

type txnListModel struct {
	txns    []networth.TransactionLine
	offset  int
	loading bool
	err     error
	width   int
	height  int
}

func (m *txnListModel) init(d Dashboard) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		txns, err := d.Transactions(context.Background(), -1)
		return txnsLoadedMsg{txns: txns, err: err}
	}
}

func (m txnListModel) update(msg tea.Msg) (txnListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnsLoadedMsg:
		m.loading = false
		m.txns = msg.txns
		m.err = msg.err
		m.offset = 0

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, keys.Down):
			if m.offset < len(m.txns)-m.visibleRows() {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m *txnListModel) visibleRows() int {
	n := m.height - 4
	if n < 1 {
		n = 15
	}
	return n
}

func (m *txnListModel) view() string {
	if m.loading {
		return "Loading transactions..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.txns) == 0 {
		return dimStyle.Render("No transactions found.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Transactions (%d)", len(m.txns))))
	b.WriteString("\n")
	header := fmt.Sprintf("  %-16s %-4s %-8s %10s  %s", "DATE", "TYPE", "TICKER", "QTY", "PORTFOLIO")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	end := m.offset + m.visibleRows()
	if end > len(m.txns) {
		end = len(m.txns)
	}
	for _, t := range m.txns[m.offset:end] {
		b.WriteString("  " + transactionLine(t))
		b.WriteString("\n")
	}
	if end < len(m.txns) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(m.txns)-end)))
		b.WriteString("\n")
	}
	return b.String()
}
