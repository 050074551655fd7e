package game

import "errors"

var (
	// ErrUnavailable means the storage gateway could not be reached even
	// after retrying. Callers should treat it as "no data yet" and poll
	// again, not as a fatal condition.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrIneligible covers actions attempted outside their valid phase or
	// by a player who is not admitted.
	ErrIneligible = errors.New("action not allowed in current state")

	// ErrAlreadyRecorded is returned for a duplicate submission or vote.
	ErrAlreadyRecorded = errors.New("already recorded")

	// ErrNotReady blocks a gated phase advance while the round is
	// incomplete.
	ErrNotReady = errors.New("round incomplete")

	ErrNotFound        = errors.New("not found")
	ErrNoMoreQuestions = errors.New("no more questions")
)

// Gateway is the storage contract the engine depends on. Implementations
// must make individual writes atomic but are not expected to provide
// transactions across calls; the engine's existence-check-then-insert
// sequences therefore carry a small race window, which backends should
// close with a unique (question_id, user_id) constraint where available.
type Gateway interface {
	// State returns the game_state singleton, creating it in LOBBY if it
	// does not exist yet.
	State() (State, error)
	// SetPhase writes phase and current_question_id in a single update.
	SetPhase(phase Phase, currentQuestionID *uint) error
	SetTotalPlayers(n int) error

	Questions() ([]Question, error)
	QuestionByID(id uint) (Question, error)
	InsertQuestion(text, correctAnswer string) (Question, error)
	DeleteQuestions() error

	PlayerByID(userID string) (Player, bool, error)
	InsertPlayer(p Player) error
	SetPlayerStatus(userID string, status Status) error
	PlayersByStatus(status Status) ([]Player, error)
	CountPlayers(status Status) (int, error)
	DeletePlayers() error

	Submissions(questionID uint) ([]Submission, error)
	AllSubmissions() ([]Submission, error)
	SubmissionExists(questionID uint, userID string) (bool, error)
	InsertSubmission(questionID uint, userID, answerText string) (Submission, error)
	SubmissionByID(id uint) (Submission, error)
	UpdateSubmissionText(id uint, answerText string) error
	DeleteSubmissions() error

	Votes(questionID uint) ([]Vote, error)
	AllVotes() ([]Vote, error)
	VoteExists(questionID uint, userID string) (bool, error)
	InsertVote(questionID uint, userID, votedFor string) (Vote, error)
	DeleteVotes() error

	AppendLog(roundID *uint, logType string, details any) error
	Logs() ([]LogEntry, error)
	DeleteLogs() error
}
