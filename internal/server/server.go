// Package server exposes the dashboard over HTTP: the embedded map page,
// the section/detail JSON API and the chat endpoints.
package server

import (
	"embed"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"votelens/internal/dataset"
	"votelens/internal/session"
)

//go:embed static
var staticFS embed.FS

// AgentProvider yields the analyst bound to a table, or an error when the
// agent could not be constructed (missing provider, store failure). The
// error is a steady degraded state, not something the server retries.
type AgentProvider func(*dataset.Table) (session.Answerer, error)

// Server wires the loader, the session manager and the agent provider
// behind the HTTP API.
type Server struct {
	logger   *zap.Logger
	loader   *dataset.Loader
	dataPath string
	sessions *session.Manager
	agentFor AgentProvider
}

// New creates a Server. agentFor may be nil when no provider is
// configured; the chat then degrades while map and detail keep working.
func New(dataPath string, loader *dataset.Loader, agentFor AgentProvider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:   logger,
		loader:   loader,
		dataPath: dataPath,
		sessions: session.NewManager(),
		agentFor: agentFor,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(SessionMiddleware)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/meta", s.handleMeta)
		r.Get("/sections", s.handleSections)
		r.Get("/sections/{id}", s.handleSectionDetail)
		r.Post("/sections/{id}/analyze", s.handleAnalyze)
		r.Get("/chat", s.handleChatHistory)
		r.Post("/chat", s.handleChat)
		r.Post("/chat/clear", s.handleChatClear)
	})

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// table loads (or returns the memoized) dataset. Every data endpoint
// funnels through here so a load failure degrades them all the same way.
func (s *Server) table() (*dataset.Table, error) {
	return s.loader.Load(s.dataPath)
}

// state returns the chat state for the request's session.
func (s *Server) state(r *http.Request) *session.State {
	return s.sessions.Get(sessionID(r))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
