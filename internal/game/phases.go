package game

import (
	"fmt"
	"log"
)

var validTransitions = map[Phase][]Phase{
	PhaseLobby:    {PhaseInput},
	PhaseInput:    {PhaseVoting},
	PhaseVoting:   {PhaseResults},
	PhaseResults:  {PhaseInput, PhaseGameOver, PhaseLobby},
	PhaseGameOver: {PhaseLobby},
}

// CanTransitionTo reports whether the state machine defines an edge from
// p to target.
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, next := range validTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}

type transitionLog struct {
	From       Phase `json:"from"`
	To         Phase `json:"to"`
	QuestionID *uint `json:"question_id,omitempty"`
	Forced     bool  `json:"forced,omitempty"`
}

// StartRound moves LOBBY or RESULTS into INPUT with the given question
// active. The phase and question reference are written in a single
// update.
func (e *Engine) StartRound(questionID uint) error {
	st, err := e.store.State()
	if err != nil {
		return err
	}
	if !st.Phase.CanTransitionTo(PhaseInput) {
		return fmt.Errorf("cannot start a round from %s: %w", st.Phase, ErrIneligible)
	}
	question, err := e.store.QuestionByID(questionID)
	if err != nil {
		return err
	}
	id := question.ID
	if err := e.store.SetPhase(PhaseInput, &id); err != nil {
		return err
	}
	e.appendLog(&id, "phase_change", transitionLog{From: st.Phase, To: PhaseInput, QuestionID: &id})
	return nil
}

// OpenVoting moves INPUT into VOTING. Under the default policy the
// submission count must have reached the admitted player count; force
// always advances.
func (e *Engine) OpenVoting(force bool) error {
	return e.advanceRound(PhaseInput, PhaseVoting, force)
}

// Reveal moves VOTING into RESULTS and snapshots the leaderboard into the
// round log.
func (e *Engine) Reveal(force bool) error {
	if err := e.advanceRound(PhaseVoting, PhaseResults, force); err != nil {
		return err
	}
	// The transition is already committed; a snapshot failure only costs
	// the audit entry.
	st, err := e.store.State()
	if err != nil {
		log.Printf("score snapshot skipped: %v", err)
		return nil
	}
	scores, err := e.Scores()
	if err != nil {
		log.Printf("score snapshot skipped: %v", err)
		return nil
	}
	e.appendLog(st.CurrentQuestionID, "score_snapshot", scores)
	return nil
}

func (e *Engine) advanceRound(from, to Phase, force bool) error {
	st, err := e.store.State()
	if err != nil {
		return err
	}
	if st.Phase != from || st.CurrentQuestionID == nil {
		return fmt.Errorf("cannot advance %s to %s: %w", st.Phase, to, ErrIneligible)
	}
	questionID := *st.CurrentQuestionID
	if !force && e.policy.RequireFullRound {
		var have int
		switch from {
		case PhaseInput:
			have, err = e.SubmissionCount(questionID)
		case PhaseVoting:
			have, err = e.VoteCount(questionID)
		}
		if err != nil {
			return err
		}
		want, err := e.CountApproved()
		if err != nil {
			return err
		}
		if have < want {
			return fmt.Errorf("%d of %d received: %w", have, want, ErrNotReady)
		}
	}
	if err := e.store.SetPhase(to, st.CurrentQuestionID); err != nil {
		return err
	}
	e.appendLog(st.CurrentQuestionID, "phase_change", transitionLog{
		From:       from,
		To:         to,
		QuestionID: st.CurrentQuestionID,
		Forced:     force,
	})
	return nil
}

// NextQuestion moves RESULTS back into INPUT with the next question in
// bank order, or reports ErrNoMoreQuestions at the end of the bank.
func (e *Engine) NextQuestion() error {
	st, err := e.store.State()
	if err != nil {
		return err
	}
	if st.Phase != PhaseResults || st.CurrentQuestionID == nil {
		return fmt.Errorf("cannot pick the next question from %s: %w", st.Phase, ErrIneligible)
	}
	questions, err := e.store.Questions()
	if err != nil {
		return err
	}
	current := -1
	for i, question := range questions {
		if question.ID == *st.CurrentQuestionID {
			current = i
			break
		}
	}
	if current < 0 || current+1 >= len(questions) {
		return ErrNoMoreQuestions
	}
	return e.StartRound(questions[current+1].ID)
}

// EndGame moves RESULTS into the terminal GAME_OVER display state.
func (e *Engine) EndGame() error {
	st, err := e.store.State()
	if err != nil {
		return err
	}
	if st.Phase != PhaseResults {
		return fmt.Errorf("cannot end the game from %s: %w", st.Phase, ErrIneligible)
	}
	if err := e.store.SetPhase(PhaseGameOver, st.CurrentQuestionID); err != nil {
		return err
	}
	e.appendLog(st.CurrentQuestionID, "phase_change", transitionLog{From: st.Phase, To: PhaseGameOver})
	return nil
}

// ReturnToLobby moves RESULTS or GAME_OVER back to LOBBY and clears the
// active question. Ledger rows are kept; scoring reads the full history.
func (e *Engine) ReturnToLobby() error {
	st, err := e.store.State()
	if err != nil {
		return err
	}
	if !st.Phase.CanTransitionTo(PhaseLobby) {
		return fmt.Errorf("cannot return to lobby from %s: %w", st.Phase, ErrIneligible)
	}
	if err := e.store.SetPhase(PhaseLobby, nil); err != nil {
		return err
	}
	e.appendLog(st.CurrentQuestionID, "phase_change", transitionLog{From: st.Phase, To: PhaseLobby})
	return nil
}

// Reset wipes the ledgers and puts the game back in LOBBY from any phase.
// A full reset also clears the question bank, the player registry, the
// audit log, and the expected player count.
func (e *Engine) Reset(full bool) error {
	if err := e.store.DeleteVotes(); err != nil {
		return err
	}
	if err := e.store.DeleteSubmissions(); err != nil {
		return err
	}
	if full {
		if err := e.store.DeleteQuestions(); err != nil {
			return err
		}
		if err := e.store.DeletePlayers(); err != nil {
			return err
		}
		if err := e.store.DeleteLogs(); err != nil {
			return err
		}
		if err := e.store.SetTotalPlayers(0); err != nil {
			return err
		}
	}
	if err := e.store.SetPhase(PhaseLobby, nil); err != nil {
		return err
	}
	e.appendLog(nil, "reset", map[string]bool{"full": full})
	return nil
}

// SetTotalPlayers records the operator's expected admitted count, shown
// next to completion counters.
func (e *Engine) SetTotalPlayers(n int) error {
	if n < 0 {
		return fmt.Errorf("player count must not be negative: %w", ErrIneligible)
	}
	return e.store.SetTotalPlayers(n)
}
