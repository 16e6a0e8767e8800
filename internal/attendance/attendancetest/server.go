// Package attendancetest provides an in-memory attendance collection endpoint
// for tests.
package attendancetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/faizmokh/gymattend/internal/attendance"
)

// Server serves GET/POST /api/attendance and DELETE /api/attendance/{id}
// from an in-memory slice.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	records []attendance.Record
	fail    map[string]int
	hits    map[string]int
	nextID  string
}

// NewServer starts a server seeded with records and closes it when the test ends.
func NewServer(t testing.TB, records ...attendance.Record) *Server {
	t.Helper()
	s := &Server{
		records: append([]attendance.Record(nil), records...),
		fail:    make(map[string]int),
		hits:    make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Fail makes every request with method answer with status.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method] = status
}

// SetNextID fixes the id assigned to the next created record.
func (s *Server) SetNextID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = id
}

// Hits returns how many requests with method reached the server.
func (s *Server) Hits(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method]
}

// Records returns a copy of the stored collection.
func (s *Server) Records() []attendance.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]attendance.Record(nil), s.records...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hits[r.Method]++
	if status, ok := s.fail[r.Method]; ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	switch {
	case r.URL.Path == attendance.CollectionPath && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.records)
	case r.URL.Path == attendance.CollectionPath && r.Method == http.MethodPost:
		var draft attendance.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id := s.nextID
		if id == "" {
			id = uuid.NewString()
		}
		s.nextID = ""
		record := attendance.Record{ID: id, Name: draft.Name, Date: draft.Date, TimeIn: draft.TimeIn}
		s.records = append(s.records, record)
		writeJSON(w, http.StatusCreated, record)
	case strings.HasPrefix(r.URL.Path, attendance.CollectionPath+"/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(r.URL.Path, attendance.CollectionPath+"/")
		for i, record := range s.records {
			if record.ID == id {
				s.records = append(s.records[:i], s.records[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
