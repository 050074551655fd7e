package game

import "log"

// Policy holds the knobs the source material disagrees on: whether an
// advance waits for every admitted player, and whether the operator may
// edit a submitted bluff before voting opens.
type Policy struct {
	RequireFullRound bool
	AllowBluffEdits  bool
}

func DefaultPolicy() Policy {
	return Policy{
		RequireFullRound: true,
		AllowBluffEdits:  true,
	}
}

// Engine owns the round state machine, the player registry, the
// submission and vote ledgers, and scoring. All state lives behind the
// Gateway; the engine itself is stateless and safe to share.
type Engine struct {
	store  Gateway
	policy Policy
}

func NewEngine(store Gateway, policy Policy) *Engine {
	return &Engine{store: store, policy: policy}
}

// State exposes the game_state singleton, creating it on first access.
func (e *Engine) State() (State, error) {
	return e.store.State()
}

func (e *Engine) Questions() ([]Question, error) {
	return e.store.Questions()
}

func (e *Engine) QuestionByID(id uint) (Question, error) {
	return e.store.QuestionByID(id)
}

func (e *Engine) Logs() ([]LogEntry, error) {
	return e.store.Logs()
}

// appendLog records an audit entry. The round log is derived state, so a
// failed append never fails the operation that produced it.
func (e *Engine) appendLog(roundID *uint, logType string, details any) {
	if err := e.store.AppendLog(roundID, logType, details); err != nil {
		log.Printf("audit log append failed type=%s err=%v", logType, err)
	}
}
