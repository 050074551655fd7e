package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bluff-this/internal/config"
	"bluff-this/internal/game"
)

const testAdminPassword = "hunter2"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.AdminPassword = testAdminPassword
	srv := New(game.NewMemoryStore(), cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, payload
}

func seedQuestion(t *testing.T, ts *httptest.Server, token, line string) {
	t.Helper()
	questionFile := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(line))
	}))
	t.Cleanup(questionFile.Close)
	status, payload := doRequest(t, ts, http.MethodPost, "/api/admin/import", token, map[string]any{
		"url": questionFile.URL,
	})
	if status != http.StatusOK {
		t.Fatalf("seed import status = %d: %v", status, payload)
	}
}

func adminLogin(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	status, payload := doRequest(t, ts, http.MethodPost, "/api/admin/login", "", map[string]any{
		"password": testAdminPassword,
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d: %v", status, payload)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", payload)
	}
	return token
}

func joinPlayer(t *testing.T, ts *httptest.Server, token, userID string) {
	t.Helper()
	status, payload := doRequest(t, ts, http.MethodPost, "/api/join", "", map[string]any{
		"user_id": userID,
	})
	if status != http.StatusOK {
		t.Fatalf("join %s status = %d: %v", userID, status, payload)
	}
	status, payload = doRequest(t, ts, http.MethodPost, "/api/admin/players", token, map[string]any{
		"user_id": userID,
		"action":  "admit",
	})
	if status != http.StatusOK {
		t.Fatalf("admit %s status = %d: %v", userID, status, payload)
	}
}
