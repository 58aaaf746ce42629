// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"

	"github.com/danielhkuo/quickly-vote/models"
)

// VotePublisher announces committed votes to downstream consumers
type VotePublisher interface {
	PublishVote(ctx context.Context, ev models.VoteEvent) error
	Close() error
}

// NewVoteEvent builds the event for a committed vote
func NewVoteEvent(v models.VoteRecord) models.VoteEvent {
	return models.VoteEvent{
		VoteID:      v.ID,
		VoterID:     v.VoterID,
		CandidateID: v.CandidateID,
		ElectionID:  v.ElectionID,
		VotedAt:     v.VotedAt,
	}
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishVote(context.Context, models.VoteEvent) error { return nil }
func (NopPublisher) Close() error                                        { return nil }
