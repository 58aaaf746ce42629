// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events publishes a VoteEvent after each committed vote.

	pub, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer pub.Close()

	err = pub.PublishVote(ctx, events.NewVoteEvent(vote))

KafkaPublisher keys messages by election ID ("global" for votes outside an
election), waits for all in-sync replicas, and compresses with Snappy.
NopPublisher is used when no brokers are configured.

Publishing is best effort. The vote is already committed when the event
is sent, so a publish error is logged by the caller and never undoes it.
*/
package events
