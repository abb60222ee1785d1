//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

package engine

import (
	"context"
	"sync"
	"time"
)

// defaultAutoRespondDelay is how long a genie waits before responding to a
// backstory update.
const defaultAutoRespondDelay = 500 * time.Millisecond

// Scheduler runs deferred follow-up tasks, such as a genie's auto-response
// after a backstory update. Tasks are tagged with the node id that
// triggered them. In manual mode tasks queue until Drain, so tests can
// await follow-ups deterministically instead of sleeping.
type Scheduler struct {
	delay  time.Duration
	manual bool

	mu    sync.Mutex
	tasks []deferredTask
}

type deferredTask struct {
	nodeID string
	run    func(context.Context)
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithDelay sets the delay before a scheduled task runs.
func WithDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.delay = d
	}
}

// WithManualDrain queues tasks until Drain is called instead of firing
// them on a timer.
func WithManualDrain() SchedulerOption {
	return func(s *Scheduler) {
		s.manual = true
	}
}

// NewScheduler creates a scheduler with the default auto-respond delay.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{delay: defaultAutoRespondDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule queues a deferred task for a node. In timer mode the task fires
// after the configured delay on its own goroutine.
func (s *Scheduler) Schedule(nodeID string, run func(context.Context)) {
	if s.manual {
		s.mu.Lock()
		s.tasks = append(s.tasks, deferredTask{nodeID: nodeID, run: run})
		s.mu.Unlock()
		return
	}
	time.AfterFunc(s.delay, func() {
		run(context.Background())
	})
}

// Drain runs every queued task in order and returns how many ran. Only
// meaningful in manual mode; in timer mode the queue is always empty.
func (s *Scheduler) Drain(ctx context.Context) int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, t := range tasks {
		t.run(ctx)
	}
	return len(tasks)
}

// Pending returns the node ids with queued tasks.
func (s *Scheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.nodeID
	}
	return ids
}
