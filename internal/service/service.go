// Package service owns the client state. It is the single writer for tasks, routine,
// profile, logs and highlights: every mutation runs under one lock on a copy of the
// state and is committed only after the store accepts it.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julianstephens/sisy/internal/actions"
	"github.com/julianstephens/sisy/internal/agent"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/scheduler"
	"github.com/julianstephens/sisy/internal/storage"
	"github.com/julianstephens/sisy/internal/timeline"
	"github.com/julianstephens/sisy/internal/utils"
)

// Chatter performs one agent round-trip.
type Chatter interface {
	Send(ctx context.Context, req agent.Request) (agent.Response, error)
}

// Options configures a Service. Only Store is required.
type Options struct {
	Store storage.Provider
	Agent Chatter
	Now   func() time.Time
	NewID func() string
}

type Service struct {
	mu    sync.Mutex
	state models.State

	store     storage.Provider
	agent     Chatter
	scheduler *scheduler.Scheduler
	applier   *actions.Applier
	now       func() time.Time
	newID     func() string

	typing atomic.Bool
}

// New loads the persisted state, seeding and saving it on first run.
func New(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("service requires a store")
	}
	now := opts.Now
	if now == nil {
		now = utils.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = utils.NewID
	}

	st, fresh, err := storage.LoadState(opts.Store, now())
	if err != nil {
		return nil, err
	}
	if fresh {
		if err := storage.SaveState(opts.Store, st); err != nil {
			return nil, err
		}
		logger.Info("Seeded initial state")
	}

	return &Service{
		state:     st,
		store:     opts.Store,
		agent:     opts.Agent,
		scheduler: scheduler.NewWithIDs(newID),
		applier:   &actions.Applier{NewID: newID},
		now:       now,
		newID:     newID,
	}, nil
}

// Snapshot returns a copy of the current state that callers may read freely.
func (s *Service) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Timeline derives the now/next/past view from the current tasks.
func (s *Service) Timeline() timeline.Timeline {
	s.mu.Lock()
	tasks := s.state.Tasks
	s.mu.Unlock()
	return timeline.Derive(tasks, s.now())
}

// Tick runs daily generation and returns the tasks it added.
func (s *Service) Tick() ([]models.Task, error) {
	var generated []models.Task
	_, err := s.mutate(func(st *models.State) (bool, error) {
		generated = s.scheduler.GenerateTasks(st.Tasks, st.Routine, s.now())
		st.Tasks = append(st.Tasks, generated...)
		return len(generated) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	return generated, nil
}

// Run ticks immediately and then every interval until ctx ends. onTick, when set,
// receives the freshly derived timeline. Generation failures are logged and the
// loop continues.
func (s *Service) Run(ctx context.Context, interval time.Duration, onTick func(timeline.Timeline)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Tick(); err != nil {
			logger.Error("Tick failed", "error", err)
		}
		if onTick != nil {
			onTick(s.Timeline())
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// mutate applies fn to a copy of the state. The copy replaces the live state only
// when fn reports a change and the store accepts the write.
func (s *Service) mutate(fn func(st *models.State) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return false, err
	}
	if err := storage.SaveState(s.store, next); err != nil {
		logger.Error("Failed to persist state", "error", err)
		return false, err
	}
	s.state = next
	return true, nil
}

func (s *Service) logEntry(action models.LogEntry) models.LogEntry {
	action.ID = s.newID()
	action.Timestamp = s.now()
	return action
}

func prependLog(st *models.State, entry models.LogEntry) {
	st.Logs = append([]models.LogEntry{entry}, st.Logs...)
}
