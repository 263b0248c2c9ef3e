// Package transfertest provides an in-memory WebStore server for tests.
package transfertest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is a request observed by the Store.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

// Store is a faithful echo store: bytes written with POST or PUT are returned
// unchanged by GET at the same path.
type Store struct {
	mu       sync.RWMutex
	files    map[string][]byte
	requests []Request

	username string
	password string

	server *httptest.Server
}

// Option configures a Store.
type Option func(*Store)

// WithBasicAuth makes POST, PUT and DELETE require the given credentials.
// GET stays public.
func WithBasicAuth(username, password string) Option {
	return func(s *Store) {
		s.username = username
		s.password = password
	}
}

// NewStore starts a Store and stops it when the test finishes.
func NewStore(t testing.TB, opts ...Option) *Store {
	t.Helper()

	s := &Store{files: make(map[string][]byte)}
	for _, opt := range opts {
		opt(s)
	}

	s.server = httptest.NewServer(s.routes())
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the base address of the store, with a trailing slash.
func (s *Store) URL() string {
	return s.server.URL + "/"
}

// Close stops the server. Later requests fail at the transport level.
func (s *Store) Close() {
	s.server.Close()
}

// Seed stores data at path without going through HTTP.
func (s *Store) Seed(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = bytes.Clone(data)
}

// File returns the stored content at path.
func (s *Store) File(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path]
	return bytes.Clone(data), ok
}

// Requests returns every request received so far, oldest first.
func (s *Store) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Store) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Get("/*", s.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/*", s.handleCreate)
		r.Put("/*", s.handleReplace)
		r.Delete("/*", s.handleDelete)
	})
	return r
}

// record captures the request and rewinds its body for the handler.
func (s *Store) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Store) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.username == "" {
			next.ServeHTTP(w, r)
			return
		}
		username, password, ok := r.BasicAuth()
		if !ok || username != s.username || password != s.password {
			w.Header().Set("WWW-Authenticate", `Basic realm="webstore"`)
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Store) handleGet(w http.ResponseWriter, r *http.Request) {
	data, ok := s.File(r.URL.Path)
	if !ok {
		writeText(w, http.StatusNotFound, "not found")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Store) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	if _, exists := s.files[r.URL.Path]; exists {
		s.mu.Unlock()
		writeText(w, http.StatusConflict, "file already exists")
		return
	}
	s.files[r.URL.Path] = body
	s.mu.Unlock()

	writeText(w, http.StatusCreated, "created")
}

func (s *Store) handleReplace(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.files[r.URL.Path] = body
	s.mu.Unlock()

	writeText(w, http.StatusOK, "updated")
}

func (s *Store) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, exists := s.files[r.URL.Path]
	delete(s.files, r.URL.Path)
	s.mu.Unlock()

	if !exists {
		writeText(w, http.StatusNotFound, "not found")
		return
	}
	writeText(w, http.StatusOK, "deleted")
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
