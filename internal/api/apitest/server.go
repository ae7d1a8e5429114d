// Package apitest runs an in-process Notefied server for tests. It
// implements the persistence and auth endpoints the client consumes,
// backed by an in-memory store, and records every request so tests can
// assert on exactly which calls were issued.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"

	"github.com/thealienated1/Notefied/internal/api"
)

// Token is the bearer token the server accepts.
const Token = "test-token"

const userID = "user-1"

// Server is the fake Notefied backend.
type Server struct {
	mu      sync.Mutex
	active  map[string]api.Note
	trashed map[string]api.TrashedNote

	requests []string
	forced   map[string]int

	httpSrv *httptest.Server
}

// New starts the server. Callers must Close it.
func New() *Server {
	s := &Server{
		active:  make(map[string]api.Note),
		trashed: make(map[string]api.TrashedNote),
		forced:  make(map[string]int),
	}

	r := mux.NewRouter()
	r.Use(s.record)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.auth)
	authed.HandleFunc("/notes", s.handleList).Methods(http.MethodGet)
	authed.HandleFunc("/notes", s.handleCreate).Methods(http.MethodPost)
	authed.HandleFunc("/notes/{id}", s.handleUpdate).Methods(http.MethodPut)
	authed.HandleFunc("/notes/{id}", s.handleTrash).Methods(http.MethodDelete)
	authed.HandleFunc("/trashed-notes", s.handleListTrashed).Methods(http.MethodGet)
	authed.HandleFunc("/trashed-notes/{id}/restore", s.handleRestore).Methods(http.MethodPost)
	authed.HandleFunc("/trashed-notes/{id}", s.handlePurge).Methods(http.MethodDelete)

	s.httpSrv = httptest.NewServer(r)
	return s
}

// Close shuts the server down.
func (s *Server) Close() {
	s.httpSrv.Close()
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// Client returns an api.Client already authenticated against the server.
func (s *Server) Client() *api.Client {
	c := api.New(s.httpSrv.URL)
	c.SetToken(Token)
	return c
}

// Seed inserts a note directly into the active collection.
func (s *Server) Seed(n api.Note) api.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = ulid.Make().String()
	}
	if n.UserID == "" {
		n.UserID = userID
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = time.Now().UTC()
	}
	s.active[n.ID] = n
	return n
}

// SeedTrashed inserts a note directly into the trashed collection.
func (s *Server) SeedTrashed(tn api.TrashedNote) api.TrashedNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tn.ID == "" {
		tn.ID = ulid.Make().String()
	}
	if tn.UserID == "" {
		tn.UserID = userID
	}
	if tn.TrashedAt.IsZero() {
		tn.TrashedAt = time.Now().UTC()
	}
	s.trashed[tn.ID] = tn
	return tn
}

// ForceError makes the next request matching "METHOD path" fail with the
// given status code.
func (s *Server) ForceError(method, path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced[method+" "+path] = code
}

// Requests returns every request seen so far as "METHOD path" strings,
// in arrival order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount counts recorded requests with the given method and path
// prefix.
func (s *Server) RequestCount(method, pathPrefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, r := range s.requests {
		if strings.HasPrefix(r, method+" "+pathPrefix) {
			count++
		}
	}
	return count
}

// ActiveNote looks up an active note by id.
func (s *Server) ActiveNote(id string) (api.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.active[id]
	return n, ok
}

// TrashedNote looks up a trashed note by id.
func (s *Server) TrashedNote(id string) (api.TrashedNote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tn, ok := s.trashed[id]
	return tn, ok
}

// ---------- middleware ----------

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		code, forced := s.forced[r.Method+" "+r.URL.Path]
		if forced {
			delete(s.forced, r.Method+" "+r.URL.Path)
		}
		s.mu.Unlock()

		if forced {
			http.Error(w, "forced failure", code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != Token {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------- handlers ----------

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": ulid.Make().String()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": Token})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	notes := make([]api.Note, 0, len(s.active))
	for _, n := range s.active {
		notes = append(notes, n)
	}
	s.mu.Unlock()

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Content) == "" {
		http.Error(w, "content required", http.StatusBadRequest)
		return
	}

	n := api.Note{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Title:     payload.Title,
		Content:   payload.Content,
		UpdatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.active[n.ID] = n
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	n, ok := s.active[id]
	if ok {
		n.Title = payload.Title
		n.Content = payload.Content
		n.UpdatedAt = time.Now().UTC()
		s.active[id] = n
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleTrash(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	n, ok := s.active[id]
	if ok {
		delete(s.active, id)
		s.trashed[id] = api.TrashedNote{Note: n, TrashedAt: time.Now().UTC()}
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListTrashed(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	notes := make([]api.TrashedNote, 0, len(s.trashed))
	for _, tn := range s.trashed {
		notes = append(notes, tn)
	}
	s.mu.Unlock()

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].TrashedAt.After(notes[j].TrashedAt)
	})
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	tn, ok := s.trashed[id]
	var n api.Note
	if ok {
		delete(s.trashed, id)
		n = tn.Note
		n.UpdatedAt = time.Now().UTC()
		s.active[id] = n
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	_, ok := s.trashed[id]
	if ok {
		delete(s.trashed, id)
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
