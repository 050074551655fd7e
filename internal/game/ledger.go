package game

import (
	"fmt"
	"strings"
)

// SubmitAnswer records a player's bluff for the active question. The
// phase must be INPUT, the question must be the active one, the player
// must be APPROVED, and no earlier submission may exist for the pair.
//
// Existence is checked before the insert; without storage-level
// uniqueness two racing calls could in principle both pass the check.
// Backends are expected to close that window with a unique
// (question_id, user_id) index.
func (e *Engine) SubmitAnswer(questionID uint, userID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("answer text is required: %w", ErrIneligible)
	}
	if err := e.requireActive(PhaseInput, questionID); err != nil {
		return err
	}
	if _, err := e.approvedPlayer(userID); err != nil {
		return err
	}
	exists, err := e.store.SubmissionExists(questionID, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("submission for question %d by %q: %w", questionID, userID, ErrAlreadyRecorded)
	}
	_, err = e.store.InsertSubmission(questionID, userID, text)
	return err
}

// CastVote records a player's pick for the active question. The choice
// must come from the round's option set. A vote for the player's own
// bluff is accepted but earns no bluff bonus at scoring time.
func (e *Engine) CastVote(questionID uint, userID, choice string) error {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return fmt.Errorf("choice is required: %w", ErrIneligible)
	}
	if err := e.requireActive(PhaseVoting, questionID); err != nil {
		return err
	}
	if _, err := e.approvedPlayer(userID); err != nil {
		return err
	}
	options, err := e.VoteOptions(questionID)
	if err != nil {
		return err
	}
	valid := false
	for _, option := range options {
		if option == choice {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("choice is not in the option set: %w", ErrIneligible)
	}
	exists, err := e.store.VoteExists(questionID, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("vote for question %d by %q: %w", questionID, userID, ErrAlreadyRecorded)
	}
	_, err = e.store.InsertVote(questionID, userID, choice)
	return err
}

// EditSubmission lets the operator touch up a bluff before voting opens.
// Gated by policy and only valid while the phase is still INPUT.
func (e *Engine) EditSubmission(id uint, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("answer text is required: %w", ErrIneligible)
	}
	if !e.policy.AllowBluffEdits {
		return fmt.Errorf("bluff edits are disabled: %w", ErrIneligible)
	}
	st, err := e.store.State()
	if err != nil {
		return err
	}
	if st.Phase != PhaseInput {
		return fmt.Errorf("bluffs are only editable before voting opens: %w", ErrIneligible)
	}
	if _, err := e.store.SubmissionByID(id); err != nil {
		return err
	}
	return e.store.UpdateSubmissionText(id, text)
}

// SubmissionCount reports how many bluffs exist for the question.
func (e *Engine) SubmissionCount(questionID uint) (int, error) {
	submissions, err := e.store.Submissions(questionID)
	if err != nil {
		return 0, err
	}
	return len(submissions), nil
}

// VoteCount reports how many votes exist for the question.
func (e *Engine) VoteCount(questionID uint) (int, error) {
	votes, err := e.store.Votes(questionID)
	if err != nil {
		return 0, err
	}
	return len(votes), nil
}

func (e *Engine) Submissions(questionID uint) ([]Submission, error) {
	return e.store.Submissions(questionID)
}

func (e *Engine) Votes(questionID uint) ([]Vote, error) {
	return e.store.Votes(questionID)
}

func (e *Engine) requireActive(phase Phase, questionID uint) error {
	st, err := e.store.State()
	if err != nil {
		return err
	}
	if st.Phase != phase {
		return fmt.Errorf("phase is %s, not %s: %w", st.Phase, phase, ErrIneligible)
	}
	if st.CurrentQuestionID == nil || *st.CurrentQuestionID != questionID {
		return fmt.Errorf("question %d is not active: %w", questionID, ErrIneligible)
	}
	return nil
}
