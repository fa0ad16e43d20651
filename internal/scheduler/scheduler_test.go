package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/networth/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	snap *store.Snapshot
	err  error
}

func (s stubSource) Snapshot(context.Context) (*store.Snapshot, error) { return s.snap, s.err }

type memRecorder struct{ got []*store.Snapshot }

func (m *memRecorder) Record(_ context.Context, snap *store.Snapshot) error {
	m.got = append(m.got, snap)
	return nil
}

func TestScheduler_RunNow(t *testing.T) {
	rec := &memRecorder{}
	src := stubSource{snap: &store.Snapshot{ID: "s1", NetWorth: decimal.NewFromInt(10)}}
	s := New(context.Background(), src, rec, zap.NewNop())

	snap, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, "s1", snap.ID)
	require.Len(t, rec.got, 1)
}

func TestScheduler_RunNowSourceError(t *testing.T) {
	rec := &memRecorder{}
	s := New(context.Background(), stubSource{err: errors.New("api down")}, rec, zap.NewNop())

	_, err := s.RunNow()
	assert.EqualError(t, err, "api down")
	assert.Empty(t, rec.got)
}

func TestScheduler_Register(t *testing.T) {
	s := New(context.Background(), stubSource{}, &memRecorder{}, zap.NewNop())

	assert.NoError(t, s.Register("0 0 22 * * *"))
	assert.Error(t, s.Register("not a cron"))
}
