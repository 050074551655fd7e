package server

import (
	"net/http"

	"bluff-this/internal/config"
	"bluff-this/internal/game"
)

// Server is the HTTP surface over the game engine. Clients poll
// GET /api/state on a fixed interval; there is no push channel.
type Server struct {
	engine   *game.Engine
	cfg      config.Config
	sessions *sessionStore
}

func New(store game.Gateway, cfg config.Config) *Server {
	return &Server{
		engine: game.NewEngine(store, game.Policy{
			RequireFullRound: cfg.RequireFullRound,
			AllowBluffEdits:  cfg.AllowBluffEdits,
		}),
		cfg:      cfg,
		sessions: newSessionStore(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/join", s.handleJoin)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/answers", s.handleSubmitAnswer)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("POST /api/votes", s.handleCastVote)
	mux.HandleFunc("GET /api/results", s.handleResults)

	mux.HandleFunc("POST /api/admin/login", s.handleAdminLogin)
	mux.HandleFunc("GET /api/admin/players", s.requireAdmin(s.handleListPlayers))
	mux.HandleFunc("POST /api/admin/players", s.requireAdmin(s.handleAdmission))
	mux.HandleFunc("GET /api/admin/questions", s.requireAdmin(s.handleListQuestions))
	mux.HandleFunc("POST /api/admin/settings", s.requireAdmin(s.handleSettings))
	mux.HandleFunc("POST /api/admin/start", s.requireAdmin(s.handleStart))
	mux.HandleFunc("POST /api/admin/advance", s.requireAdmin(s.handleAdvance))
	mux.HandleFunc("POST /api/admin/next", s.requireAdmin(s.handleNextQuestion))
	mux.HandleFunc("POST /api/admin/end", s.requireAdmin(s.handleEndGame))
	mux.HandleFunc("POST /api/admin/lobby", s.requireAdmin(s.handleReturnToLobby))
	mux.HandleFunc("POST /api/admin/reset", s.requireAdmin(s.handleReset))
	mux.HandleFunc("POST /api/admin/import", s.requireAdmin(s.handleImport))
	mux.HandleFunc("POST /api/admin/submissions/{id}", s.requireAdmin(s.handleEditSubmission))
	mux.HandleFunc("GET /api/admin/logs", s.requireAdmin(s.handleLogs))
	return mux
}
