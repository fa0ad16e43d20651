// Package scheduler records net-worth snapshots on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/simonvc/networth/internal/store"
	"go.uber.org/zap"
)

// Snapshotter values every portfolio.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*store.Snapshot, error)
}

// Recorder persists a snapshot.
type Recorder interface {
	Record(ctx context.Context, snap *store.Snapshot) error
}

type Scheduler struct {
	cron     *cron.Cron
	source   Snapshotter
	recorder Recorder
	log      *zap.Logger
	ctx      context.Context
}

func New(ctx context.Context, source Snapshotter, rec Recorder, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		source:   source,
		recorder: rec,
		log:      log,
		ctx:      ctx,
	}
}

// Register schedules the snapshot job. expr uses the six-field cron format
// with a leading seconds field.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.cron.AddFunc(expr, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunNow takes and records one snapshot.
func (s *Scheduler) RunNow() (*store.Snapshot, error) {
	snap, err := s.source.Snapshot(s.ctx)
	if err != nil {
		s.log.Error("snapshot failed", zap.Error(err))
		return nil, err
	}
	if err := s.recorder.Record(s.ctx, snap); err != nil {
		s.log.Error("record snapshot failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("snapshot recorded", zap.String("id", snap.ID), zap.String("net_worth", snap.NetWorth.String()))
	return snap, nil
}
