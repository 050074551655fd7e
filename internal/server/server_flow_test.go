package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestFullRoundFlow walks one complete round over the HTTP surface:
// import, admission, answers, voting, reveal, next question, game over,
// reset.
func TestFullRoundFlow(t *testing.T) {
	ts := newTestServer(t)
	token := adminLogin(t, ts)

	questionFile := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Capital of France|Paris\nmalformed line\nSecond question|Answer two"))
	}))
	t.Cleanup(questionFile.Close)

	status, payload := doRequest(t, ts, http.MethodPost, "/api/admin/import", token, map[string]any{
		"url": questionFile.URL,
	})
	if status != http.StatusOK {
		t.Fatalf("import status = %d: %v", status, payload)
	}
	if payload["imported"] != float64(2) || payload["skipped"] != float64(1) {
		t.Fatalf("import = %v, want 2 imported and 1 skipped", payload)
	}

	joinPlayer(t, ts, token, "alice")
	joinPlayer(t, ts, token, "bob")
	if status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/settings", token, map[string]any{
		"total_players": 2,
	}); status != http.StatusOK {
		t.Fatalf("settings status = %d: %v", status, payload)
	}

	status, payload = doRequest(t, ts, http.MethodGet, "/api/admin/questions", token, nil)
	if status != http.StatusOK {
		t.Fatalf("questions status = %d: %v", status, payload)
	}
	questions, _ := payload["questions"].([]any)
	if len(questions) != 2 {
		t.Fatalf("question bank = %v, want 2 entries", payload)
	}
	firstID := questions[0].(map[string]any)["id"].(float64)

	if status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/start", token, map[string]any{
		"question_id": firstID,
	}); status != http.StatusOK {
		t.Fatalf("start status = %d: %v", status, payload)
	}

	status, payload = doRequest(t, ts, http.MethodGet, "/api/state", "", nil)
	if status != http.StatusOK || payload["phase"] != "INPUT" {
		t.Fatalf("state = %v, want INPUT", payload)
	}
	if question, ok := payload["question"].(map[string]any); !ok || question["text"] != "Capital of France" {
		t.Fatalf("state question = %v", payload["question"])
	}

	for user, text := range map[string]string{"alice": "Lyon", "bob": "Nice"} {
		if status, payload = doRequest(t, ts, http.MethodPost, "/api/answers", "", map[string]any{
			"user_id":     user,
			"question_id": firstID,
			"text":        text,
		}); status != http.StatusCreated {
			t.Fatalf("answer from %s status = %d: %v", user, status, payload)
		}
	}

	if status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/advance", token, map[string]any{}); status != http.StatusOK {
		t.Fatalf("advance to voting status = %d: %v", status, payload)
	}

	status, payload = doRequest(t, ts, http.MethodGet, "/api/options?question_id=1&user_id=alice", "", nil)
	if status != http.StatusOK {
		t.Fatalf("options status = %d: %v", status, payload)
	}
	if options, _ := payload["options"].([]any); len(options) != 3 {
		t.Fatalf("options = %v, want 3 entries", payload)
	}

	for user, choice := range map[string]string{"alice": "Paris", "bob": "Lyon"} {
		if status, payload = doRequest(t, ts, http.MethodPost, "/api/votes", "", map[string]any{
			"user_id":     user,
			"question_id": firstID,
			"choice":      choice,
		}); status != http.StatusCreated {
			t.Fatalf("vote from %s status = %d: %v", user, status, payload)
		}
	}

	if status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/advance", token, map[string]any{}); status != http.StatusOK {
		t.Fatalf("advance to results status = %d: %v", status, payload)
	}

	status, payload = doRequest(t, ts, http.MethodGet, "/api/results", "", nil)
	if status != http.StatusOK {
		t.Fatalf("results status = %d: %v", status, payload)
	}
	question, _ := payload["question"].(map[string]any)
	if question["correct_answer"] != "Paris" {
		t.Fatalf("results question = %v", question)
	}
	leaderboard, _ := payload["leaderboard"].([]any)
	if len(leaderboard) != 2 {
		t.Fatalf("leaderboard = %v, want 2 rows", payload)
	}
	top := leaderboard[0].(map[string]any)
	if top["user_id"] != "alice" || top["points"] != float64(15) {
		t.Fatalf("top row = %v, want alice with 15", top)
	}

	if status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/next", token, nil); status != http.StatusOK {
		t.Fatalf("next question status = %d: %v", status, payload)
	}
	status, payload = doRequest(t, ts, http.MethodGet, "/api/state", "", nil)
	if payload["phase"] != "INPUT" {
		t.Fatalf("state after next = %v, want INPUT on the second question", payload)
	}

	for _, step := range []string{"advance", "advance", "end"} {
		if status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/"+step, token, map[string]any{
			"force": true,
		}); status != http.StatusOK {
			t.Fatalf("%s status = %d: %v", step, status, payload)
		}
	}
	status, payload = doRequest(t, ts, http.MethodGet, "/api/state", "", nil)
	if payload["phase"] != "GAME_OVER" {
		t.Fatalf("state = %v, want GAME_OVER", payload)
	}

	if status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/reset", token, map[string]any{
		"full": true,
	}); status != http.StatusOK {
		t.Fatalf("reset status = %d: %v", status, payload)
	}
	status, payload = doRequest(t, ts, http.MethodGet, "/api/state", "", nil)
	if payload["phase"] != "LOBBY" || payload["approved_players"] != float64(0) {
		t.Fatalf("state after full reset = %v, want an empty LOBBY", payload)
	}
}
