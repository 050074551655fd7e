package game

import (
	"fmt"
	"strings"
	"time"
)

// IsGhost reports whether the id is the reserved read-only observer.
func IsGhost(userID string) bool {
	return userID == GhostUserID
}

// Register creates a PENDING entry for a new user id. Re-registration is
// a no-op: an APPROVED or BANNED player is never moved back to PENDING by
// joining again. The ghost observer is let through without an entry.
//
// User ids are chosen by the joining party, so two people picking the
// same nickname share one registry row. Known limitation.
func (e *Engine) Register(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("user id is required: %w", ErrIneligible)
	}
	if IsGhost(userID) {
		return nil
	}
	_, found, err := e.store.PlayerByID(userID)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return e.store.InsertPlayer(Player{
		UserID:   userID,
		Status:   StatusPending,
		JoinedAt: time.Now().UTC(),
	})
}

// Admit approves a pending player. Unknown ids are a no-op.
func (e *Engine) Admit(userID string) error {
	return e.setStatus(userID, StatusApproved)
}

// Ban refuses a player any further submissions or votes. Unknown ids are
// a no-op.
func (e *Engine) Ban(userID string) error {
	return e.setStatus(userID, StatusBanned)
}

func (e *Engine) setStatus(userID string, status Status) error {
	if IsGhost(userID) {
		return fmt.Errorf("the observer has no admission status: %w", ErrIneligible)
	}
	_, found, err := e.store.PlayerByID(userID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := e.store.SetPlayerStatus(userID, status); err != nil {
		return err
	}
	e.appendLog(nil, "admission_change", map[string]string{"user_id": userID, "status": string(status)})
	return nil
}

func (e *Engine) ListPlayers(status Status) ([]Player, error) {
	return e.store.PlayersByStatus(status)
}

// CountApproved is the denominator for the completion gates in INPUT and
// VOTING.
func (e *Engine) CountApproved() (int, error) {
	return e.store.CountPlayers(StatusApproved)
}

// approvedPlayer fetches a registered, admitted player, rejecting the
// ghost and anyone PENDING or BANNED.
func (e *Engine) approvedPlayer(userID string) (Player, error) {
	if IsGhost(userID) {
		return Player{}, fmt.Errorf("the observer cannot participate: %w", ErrIneligible)
	}
	player, found, err := e.store.PlayerByID(userID)
	if err != nil {
		return Player{}, err
	}
	if !found || player.Status != StatusApproved {
		return Player{}, fmt.Errorf("player %q is not admitted: %w", userID, ErrIneligible)
	}
	return player, nil
}
