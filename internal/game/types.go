package game

import (
	"encoding/json"
	"time"
)

// Phase is the current state of the round state machine.
type Phase string

const (
	PhaseLobby    Phase = "LOBBY"
	PhaseInput    Phase = "INPUT"
	PhaseVoting   Phase = "VOTING"
	PhaseResults  Phase = "RESULTS"
	PhaseGameOver Phase = "GAME_OVER"
)

// Status is a player's admission status.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusBanned   Status = "BANNED"
)

// GhostUserID is a reserved identity that may observe any phase without
// registering. It is never counted toward completion and may never submit
// or vote.
const GhostUserID = "ghost"

type Question struct {
	ID            uint
	Text          string
	CorrectAnswer string
	CreatedAt     time.Time
}

// State is the game_state singleton. CurrentQuestionID is nil only in
// LOBBY and GAME_OVER.
type State struct {
	Phase             Phase
	CurrentQuestionID *uint
	TotalPlayers      int
}

type Player struct {
	UserID   string
	Status   Status
	JoinedAt time.Time
}

// Submission is a player's bluff answer for one question. At most one
// exists per (question, user) pair.
type Submission struct {
	ID         uint
	QuestionID uint
	UserID     string
	AnswerText string
	CreatedAt  time.Time
}

// Vote records which option a player picked. VotedFor holds the option
// text itself, matching either a Submission.AnswerText or the question's
// correct answer.
type Vote struct {
	ID         uint
	QuestionID uint
	UserID     string
	VotedFor   string
	CreatedAt  time.Time
}

// LogEntry is an append-only audit record of phase transitions and score
// snapshots.
type LogEntry struct {
	ID        uint
	RoundID   *uint
	LogType   string
	Details   json.RawMessage
	CreatedAt time.Time
}
