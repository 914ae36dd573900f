// ABOUTME: HTTP orchestrator exposing the assistant as an Alice-style skill and a JSON API
// ABOUTME: Session state lives in the configured store; turns are serialized per session
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/harper/vegra/internal/core"
	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the HTTP server
type Options struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves assistant turns over HTTP
type Server struct {
	manager *session.Manager
	catalog *models.Catalog
	router  chi.Router
	http    *http.Server
}

// TurnRequest is the body of POST /v1/turn
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Utterance string `json:"utterance"`
}

// TurnResponse is the body returned by POST /v1/turn
type TurnResponse struct {
	SessionID string     `json:"session_id"`
	Text      string     `json:"text"`
	Exit      bool       `json:"exit"`
	Tag       models.Tag `json:"tag,omitempty"`
}

// New builds the router and the underlying http.Server
func New(manager *session.Manager, catalog *models.Catalog, opts Options) *Server {
	s := &Server{
		manager: manager,
		catalog: catalog,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/alice/webhook", s.handleAlice)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/turn", s.handleTurn)
		r.Get("/intents", s.handleIntents)
		r.Delete("/sessions/{id}", s.handleReset)
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	s.http = &http.Server{
		Addr:         opts.Address,
		Handler:      r,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server stops. A graceful shutdown returns nil.
func (s *Server) ListenAndServe() error {
	logger.Log.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight turns
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleAlice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AliceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if req.Request.Type != "" && req.Request.Type != TypeSimpleUtterance {
		logger.Log.Debug("unsupported request type", zap.String("type", req.Request.Type))
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	id := aliceSessionID(req.Session)
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var text string
	var end bool
	switch {
	case req.Session.New && strings.TrimSpace(req.utterance()) == "":
		// launch phrase with no command
		if err := s.manager.Reset(ctx, id); err != nil {
			logger.Log.Warn("cannot reset session", zap.String("session", id), zap.Error(err))
		}
		text = core.Greeting
	default:
		if req.Session.New {
			if err := s.manager.Reset(ctx, id); err != nil {
				logger.Log.Warn("cannot reset session", zap.String("session", id), zap.Error(err))
			}
		}
		result, err := s.manager.Turn(ctx, id, req.utterance())
		if err != nil {
			logger.Log.Error("turn failed", zap.String("session", id), zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		text, end = result.Text, result.Exit
	}

	writeJSON(w, http.StatusOK, AliceResponse{
		Response: AliceResponsePayload{Text: text, EndSession: end},
		Version:  aliceVersion,
	})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		req.SessionID = models.NewSessionID()
	}

	result, err := s.manager.Turn(r.Context(), req.SessionID, req.Utterance)
	if err != nil {
		logger.Log.Error("turn failed", zap.String("session", req.SessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "turn failed")
		return
	}
	writeJSON(w, http.StatusOK, TurnResponse{
		SessionID: req.SessionID,
		Text:      result.Text,
		Exit:      result.Exit,
		Tag:       result.Tag,
	})
}

func (s *Server) handleIntents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": s.catalog.Tags()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Reset(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// aliceSessionID keys state by the Alice session, falling back to the user id when no session id is sent
func aliceSessionID(s AliceSession) string {
	if s.SessionID != "" {
		return "alice:" + s.SessionID
	}
	if s.User.UserID != "" {
		return "alice-user:" + s.User.UserID
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger logs each request at debug level with zap
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
