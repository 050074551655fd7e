package game

import (
	"errors"
	"testing"
)

func TestRegisterIsIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	if err := engine.Register("alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.Register("alice"); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	players, err := engine.ListPlayers(StatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("registry = %+v, want a single pending row", players)
	}
}

func TestRegisterNeverDowngradesStatus(t *testing.T) {
	engine, store := newTestEngine(t)
	admitPlayers(t, engine, "alice")
	if err := engine.Register("alice"); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	player, found, _ := store.PlayerByID("alice")
	if !found || player.Status != StatusApproved {
		t.Fatalf("player = %+v, re-joining must not reset APPROVED", player)
	}

	if err := engine.Ban("bob"); err != nil {
		t.Fatalf("ban unknown id should be a no-op: %v", err)
	}
	if err := engine.Register("bob"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.Ban("bob"); err != nil {
		t.Fatalf("ban: %v", err)
	}
	if err := engine.Register("bob"); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	player, _, _ = store.PlayerByID("bob")
	if player.Status != StatusBanned {
		t.Fatalf("status = %s, re-joining must not lift a ban", player.Status)
	}
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	engine, _ := newTestEngine(t)
	if err := engine.Register("   "); !errors.Is(err, ErrIneligible) {
		t.Fatalf("blank id = %v, want ErrIneligible", err)
	}
}

func TestCountApprovedExcludesOthers(t *testing.T) {
	engine, _ := newTestEngine(t)
	admitPlayers(t, engine, "alice", "bob")
	if err := engine.Register("carol"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.Register("dave"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.Admit("dave"); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := engine.Ban("dave"); err != nil {
		t.Fatalf("ban: %v", err)
	}

	count, err := engine.CountApproved()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("approved count = %d, want 2", count)
	}
}

func TestAdmitUnknownIsNoOp(t *testing.T) {
	engine, store := newTestEngine(t)
	if err := engine.Admit("nobody"); err != nil {
		t.Fatalf("admit unknown: %v", err)
	}
	if _, found, _ := store.PlayerByID("nobody"); found {
		t.Fatal("admit must not create registry rows")
	}
}

func TestGhostHasNoAdmissionStatus(t *testing.T) {
	engine, _ := newTestEngine(t)
	if err := engine.Admit(GhostUserID); !errors.Is(err, ErrIneligible) {
		t.Fatalf("admitting the ghost = %v, want ErrIneligible", err)
	}
}
