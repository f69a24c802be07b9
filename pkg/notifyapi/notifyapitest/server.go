// Package notifyapitest provides an in-process fake of the notification
// service for tests.
package notifyapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/notifykit/pkg/catalog"
	"github.com/dmitrymomot/notifykit/pkg/notifyapi"
)

// Server is a fake notification service backed by memory.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	token      string
	templates  []catalog.Template
	sent       []notifyapi.SendRequest
	requestIDs []string
	nextID     int

	failStatus  int
	failMessage string
}

// NewServer starts a fake service. Close it when done.
func NewServer() *Server {
	s := &Server{}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recordRequestID)
	r.Use(s.authenticate)

	r.Post("/api/notifications/send", s.send)
	r.Route("/api/notifications/templates", func(r chi.Router) {
		r.Get("/", s.listTemplates)
		r.Post("/", s.createTemplate)
		r.Put("/", s.updateTemplate)
		r.Delete("/", s.deleteTemplate)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// RequireToken makes every request without "Bearer token" fail with 401.
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// FailSend makes the send endpoint reject requests. A 2xx status produces
// {success:false, message}.
func (s *Server) FailSend(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// SeedTemplates replaces the stored custom templates.
func (s *Server) SeedTemplates(list ...catalog.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append([]catalog.Template(nil), list...)
}

// Templates returns the stored custom templates.
func (s *Server) Templates() []catalog.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Template(nil), s.templates...)
}

// Sent returns every accepted send request.
func (s *Server) Sent() []notifyapi.SendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notifyapi.SendRequest(nil), s.sent...)
}

// RequestIDs returns the request ids seen so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) recordRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestIDs = append(s.requestIDs, middleware.GetReqID(r.Context()))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()

		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Token inválido ou expirado"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	var req notifyapi.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}

	s.mu.Lock()
	status, message := s.failStatus, s.failMessage
	if status == 0 {
		s.sent = append(s.sent, req)
	}
	s.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]any{"success": false, "message": message})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Notificação enviada para %d destinatário(s)", len(req.Recipients)),
	})
}

func (s *Server) listTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": s.Templates()})
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var t catalog.Template
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil || strings.TrimSpace(t.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "name is required"})
		return
	}

	s.mu.Lock()
	s.nextID++
	t.ID = fmt.Sprintf("tpl_%d", s.nextID)
	s.templates = append(s.templates, t)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": t})
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var t catalog.Template
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil || t.ID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "id is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == t.ID {
			s.templates[i] = t
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": t})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "template not found"})
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "template not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
