// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, publisher)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Accounts (bearer token unless noted):

	POST /api/users/signup           - Register (public)
	POST /api/users/login            - Issue session token (public)
	GET  /api/users/me               - Voter plus voted state
	GET  /api/users/profile          - Voter profile
	PUT  /api/users/profile/password - Change password

Voting (bearer token):

	POST     /api/users/vote                   - Cast vote, body {candidateId, electionId?}
	GET|POST /api/candidates/vote/{candidateID} - Cast vote by path, ?electionId=
	GET      /api/users/my-votes               - Voter's votes
	GET      /api/users/available-elections    - Elections open now

Tallies (public):

	GET /api/candidates/vote/count
	GET /api/candidates/vote/count/{electionID}

Candidates:

	GET    /api/candidates               - List (public)
	GET    /api/candidates/summary       - Name and party (public)
	POST   /api/candidates               - Create (admin)
	GET    /api/candidates/{candidateID} - Detail with votes (admin)
	PUT    /api/candidates/{candidateID} - Partial update (admin)
	DELETE /api/candidates/{candidateID} - Delete (admin)

Elections:

	POST /api/elections              - Create (admin)
	GET  /api/elections              - List (public)
	GET  /api/elections/{electionID} - Detail (public)

# Middleware

Every API route is wrapped in middleware.WithLogging. Routes that need a
voter are also wrapped in middleware.WithSession with the configured JWT
secret; admin checks happen in the handlers.
*/
package router
