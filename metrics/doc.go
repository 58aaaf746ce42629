// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics defines the Prometheus collectors for the API.

  - quickly_vote_votes_cast_total{election_id}: committed votes ("global" outside elections)
  - quickly_vote_votes_rejected_total{reason}: refused votes by error code
  - quickly_vote_logins_total{result}: login attempts, success or failure
  - quickly_vote_http_request_duration_seconds{method,route,status}: request latency

Default is registered with the global registry and served by the router
at GET /metrics. Tests build their own set with NewAPIMetrics and a fresh
prometheus.NewRegistry().
*/
package metrics
