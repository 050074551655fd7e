package game

import "testing"

func newTestEngine(t *testing.T) (*Engine, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewEngine(store, DefaultPolicy()), store
}

func addQuestion(t *testing.T, store *MemoryStore, text, answer string) Question {
	t.Helper()
	question, err := store.InsertQuestion(text, answer)
	if err != nil {
		t.Fatalf("insert question: %v", err)
	}
	return question
}

func admitPlayers(t *testing.T, engine *Engine, userIDs ...string) {
	t.Helper()
	for _, userID := range userIDs {
		if err := engine.Register(userID); err != nil {
			t.Fatalf("register %s: %v", userID, err)
		}
		if err := engine.Admit(userID); err != nil {
			t.Fatalf("admit %s: %v", userID, err)
		}
	}
}

func startRound(t *testing.T, engine *Engine, questionID uint) {
	t.Helper()
	if err := engine.StartRound(questionID); err != nil {
		t.Fatalf("start round: %v", err)
	}
}
