package server

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bluff-this/internal/game"
)

type admissionRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

type settingsRequest struct {
	TotalPlayers int `json:"total_players"`
}

type startRequest struct {
	QuestionID uint `json:"question_id"`
}

type advanceRequest struct {
	Force bool `json:"force"`
}

type resetRequest struct {
	Full bool `json:"full"`
}

type importRequest struct {
	URL string `json:"url"`
}

type editSubmissionRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	status := game.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = game.StatusPending
	}
	players, err := s.engine.ListPlayers(status)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	list := make([]map[string]any, 0, len(players))
	for _, player := range players {
		list = append(list, map[string]any{
			"user_id":   player.UserID,
			"status":    player.Status,
			"joined_at": player.JoinedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": list})
}

func (s *Server) handleAdmission(w http.ResponseWriter, r *http.Request) {
	var req admissionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var err error
	switch req.Action {
	case "admit":
		err = s.engine.Admit(req.UserID)
	case "ban":
		err = s.engine.Ban(req.UserID)
	default:
		writeError(w, http.StatusBadRequest, "action must be admit or ban")
		return
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("admission change user_id=%s action=%s", req.UserID, req.Action)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.engine.Questions()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	list := make([]map[string]any, 0, len(questions))
	for _, question := range questions {
		list = append(list, map[string]any{
			"id":             question.ID,
			"text":           question.Text,
			"correct_answer": question.CorrectAnswer,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": list})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.SetTotalPlayers(req.TotalPlayers); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.StartRound(req.QuestionID); err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("round started question_id=%d", req.QuestionID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdvance moves INPUT to VOTING or VOTING to RESULTS, whichever the
// current phase allows. Force bypasses the completion gate.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st, err := s.engine.State()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	switch st.Phase {
	case game.PhaseInput:
		err = s.engine.OpenVoting(req.Force)
	case game.PhaseVoting:
		err = s.engine.Reveal(req.Force)
	default:
		writeError(w, http.StatusConflict, fmt.Sprintf("nothing to advance from %s", st.Phase))
		return
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("phase advanced from=%s forced=%t", st.Phase, req.Force)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.NextQuestion(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.EndGame(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReturnToLobby(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ReturnToLobby(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.Reset(req.Full); err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("game reset full=%t", req.Full)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleImport fetches a pipe-delimited question file from a URL and
// loads the valid rows. Malformed lines are dropped, never fatal.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		writeError(w, http.StatusBadRequest, "url must be http or https")
		return
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(req.URL)
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not fetch question file")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		writeError(w, http.StatusBadGateway, "could not fetch question file")
		return
	}
	imported, skipped, err := s.engine.ImportQuestions(resp.Body)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("questions imported count=%d skipped=%d", imported, skipped)
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported, "skipped": skipped})
}

func (s *Server) handleEditSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid submission id")
		return
	}
	var req editSubmissionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.EditSubmission(uint(id), req.Text); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.Logs()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	list := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		list = append(list, map[string]any{
			"id":         entry.ID,
			"round_id":   entry.RoundID,
			"log_type":   entry.LogType,
			"details":    entry.Details,
			"created_at": entry.CreatedAt,
		})
	}
	w.Header().Set("Content-Disposition", `attachment; filename="game_logs.json"`)
	writeJSON(w, http.StatusOK, map[string]any{"logs": list})
}
