package server

import (
	"log"
	"net/http"
	"strconv"

	"bluff-this/internal/game"
)

type joinRequest struct {
	UserID string `json:"user_id"`
}

type answerRequest struct {
	UserID     string `json:"user_id"`
	QuestionID uint   `json:"question_id"`
	Text       string `json:"text"`
}

type voteRequest struct {
	UserID     string `json:"user_id"`
	QuestionID uint   `json:"question_id"`
	Choice     string `json:"choice"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.Register(req.UserID); err != nil {
		writeEngineError(w, err)
		return
	}
	if game.IsGhost(req.UserID) {
		writeJSON(w, http.StatusOK, map[string]any{
			"user_id":  req.UserID,
			"observer": true,
		})
		return
	}
	log.Printf("join request user_id=%s", req.UserID)
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":  req.UserID,
		"observer": false,
	})
}

// handleState is the polling endpoint every client re-reads on a fixed
// interval. The correct answer never appears here; it is only exposed by
// /api/results once the phase reaches RESULTS.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.State()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	approved, err := s.engine.CountApproved()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	payload := map[string]any{
		"phase":                 st.Phase,
		"total_players":         st.TotalPlayers,
		"approved_players":      approved,
		"poll_interval_seconds": s.cfg.PollIntervalSeconds,
	}
	if st.CurrentQuestionID != nil {
		question, err := s.engine.QuestionByID(*st.CurrentQuestionID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		payload["question"] = map[string]any{
			"id":   question.ID,
			"text": question.Text,
		}
		submissionCount, err := s.engine.SubmissionCount(question.ID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		voteCount, err := s.engine.VoteCount(question.ID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		payload["submission_count"] = submissionCount
		payload["vote_count"] = voteCount
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.SubmitAnswer(req.QuestionID, req.UserID, req.Text); err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("answer submitted question_id=%d user_id=%s", req.QuestionID, req.UserID)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted"})
}

// handleOptions returns the option set in the viewer's fixed order, so a
// page refresh mid-vote shows the same list.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.ParseUint(r.URL.Query().Get("question_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "question_id is required")
		return
	}
	viewerID := r.URL.Query().Get("user_id")
	if viewerID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	options, err := s.engine.OptionsForViewer(uint(questionID), viewerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": options})
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.CastVote(req.QuestionID, req.UserID, req.Choice); err != nil {
		writeEngineError(w, err)
		return
	}
	log.Printf("vote cast question_id=%d user_id=%s", req.QuestionID, req.UserID)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "voted"})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.State()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if st.Phase != game.PhaseResults && st.Phase != game.PhaseGameOver {
		writeError(w, http.StatusConflict, "results are not available yet")
		return
	}
	payload := map[string]any{"phase": st.Phase}
	if st.CurrentQuestionID != nil {
		question, err := s.engine.QuestionByID(*st.CurrentQuestionID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		votes, err := s.engine.Votes(question.ID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		roundVotes := make([]map[string]string, 0, len(votes))
		for _, vote := range votes {
			roundVotes = append(roundVotes, map[string]string{
				"user_id":   vote.UserID,
				"voted_for": vote.VotedFor,
			})
		}
		payload["question"] = map[string]any{
			"id":             question.ID,
			"text":           question.Text,
			"correct_answer": question.CorrectAnswer,
		}
		payload["votes"] = roundVotes
	}
	leaderboard, err := s.engine.Leaderboard()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	payload["leaderboard"] = leaderboard
	writeJSON(w, http.StatusOK, payload)
}
