// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"sync"

	"github.com/danielhkuo/quickly-vote/events"
	"github.com/danielhkuo/quickly-vote/models"
)

var _ events.VotePublisher = (*MemoryPublisher)(nil)

// MemoryPublisher keeps published vote events in memory, in publish order
type MemoryPublisher struct {
	mu     sync.Mutex
	events []models.VoteEvent
	err    error
}

// FailWith makes subsequent publishes return err
func (m *MemoryPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryPublisher) PublishVote(_ context.Context, ev models.VoteEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, ev)
	return nil
}

// Events returns a copy of everything published so far
func (m *MemoryPublisher) Events() []models.VoteEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.VoteEvent(nil), m.events...)
}

func (m *MemoryPublisher) Close() error { return nil }
