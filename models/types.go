package models

import "time"

// Voter roles
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// GlobalScope is the election scope of candidates without an election
const GlobalScope = ""

// Request types

type SignupRequest struct {
	IdentityNumber string `json:"identityNumber"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Address        string `json:"address"`
	Age            int    `json:"age"`
	Role           string `json:"role"`
}

type LoginRequest struct {
	IdentityNumber string `json:"identityNumber"`
	Password       string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidateId"`
	ElectionID  string `json:"electionId,omitempty"`
}

type CreateCandidateRequest struct {
	Name        string `json:"name"`
	Party       string `json:"party"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Age         *int   `json:"age,omitempty"`
	ElectionID  string `json:"electionId,omitempty"`
}

// nil fields are left unchanged
type UpdateCandidateRequest struct {
	Name        *string `json:"name,omitempty"`
	Party       *string `json:"party,omitempty"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
	Age         *int    `json:"age,omitempty"`
}

type CreateElectionRequest struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Response types

type SignupResponse struct {
	User      Voter     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MeResponse struct {
	Voter
	IsVoted          bool     `json:"isVoted"`
	VotedElections   []string `json:"votedElections"`
	VotedCandidateID *string  `json:"votedCandidateId"`
}

type ProfileResponse struct {
	User Voter `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CastVoteResponse struct {
	Message string     `json:"message"`
	Vote    VoteRecord `json:"vote"`
}

type MyVotesResponse struct {
	Votes []VoterVote `json:"votes"`
}

type AvailableElectionsResponse struct {
	Elections []Election `json:"elections"`
}

// Domain types

type Voter struct {
	ID             string    `json:"id"`
	IdentityNumber string    `json:"identityNumber"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Age            int       `json:"age"`
	PasswordHash   string    `json:"-"` // Never expose in JSON
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Candidate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Party       string       `json:"party"`
	Image       string       `json:"image"`
	Description string       `json:"description"`
	Age         *int         `json:"age,omitempty"`
	ElectionID  *string      `json:"electionId,omitempty"`
	VoteCount   int          `json:"voteCount"`
	Votes       []VoteRecord `json:"votes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type CandidateSummary struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

type VoteRecord struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	VoterID     string    `json:"voterId"`
	ElectionID  string    `json:"electionId"`
	VotedAt     time.Time `json:"votedAt"`
}

// VoterVote is a vote joined with what it was cast for
type VoterVote struct {
	VoteRecord
	CandidateName  string  `json:"candidateName"`
	CandidateParty string  `json:"candidateParty"`
	ElectionName   *string `json:"electionName,omitempty"`
}

type Election struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}

// Open reports whether t falls inside the election window (inclusive)
func (e Election) Open(t time.Time) bool {
	return !t.Before(e.StartDate) && !t.After(e.EndDate)
}

type TallyEntry struct {
	CandidateID string    `json:"candidateId"`
	Name        string    `json:"name"`
	Party       string    `json:"party"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"-"`
}

// VoteEvent is published after a vote commits
type VoteEvent struct {
	VoteID      string    `json:"vote_id"`
	VoterID     string    `json:"voter_id"`
	CandidateID string    `json:"candidate_id"`
	ElectionID  string    `json:"election_id"`
	VotedAt     time.Time `json:"voted_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
