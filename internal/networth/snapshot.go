package networth

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/networth/internal/store"
)

// Snapshot values every portfolio now. Portfolios that cannot be valued are
// kept with a nil value so gaps stay visible in the journal.
func (s *Service) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	ov, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	snap := &store.Snapshot{
		TakenAt:  time.Now().UTC(),
		NetWorth: ov.NetWorth,
		Lines:    make([]store.SnapshotLine, 0, len(ov.Rows)),
	}
	for _, r := range ov.Rows {
		line := store.SnapshotLine{PortfolioID: r.Portfolio.ID, Name: r.Portfolio.Name}
		if r.Value != nil {
			v := decimal.NewFromFloat(*r.Value)
			line.Value = &v
		}
		snap.Lines = append(snap.Lines, line)
	}
	return snap, nil
}
