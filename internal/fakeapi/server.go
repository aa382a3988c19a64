// Package fakeapi is an in-memory stand-in for the yaranai REST API.
//
// It serves the same routes as the real backend under /api so that the
// client, the use cases and the commands can be exercised end to end
// with net/http/httptest.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/yaranai/yaranai/internal/domain"
)

// Call is one request observed by the server.
type Call struct {
	Method    string
	Path      string
	RequestID string
	Body      []byte
}

// RateFunc derives an hourly rate from an income setting.
type RateFunc func(domain.IncomeSetting) float64

// DefaultRate assumes 160 working hours a month.
func DefaultRate(s domain.IncomeSetting) float64 {
	switch s.IncomeType {
	case domain.IncomeAnnual:
		return s.Amount / 12 / 160
	case domain.IncomeMonthly:
		return s.Amount / 160
	default:
		return s.Amount
	}
}

// Server is an in-memory API. The zero value is not usable; call New.
type Server struct {
	mu     sync.Mutex
	items  []domain.Item
	nextID int64
	calls  []Call
	fail   map[string]int // "METHOD /path-template" -> status to return
	rate   RateFunc
	hours  map[string]float64 // title -> hours_per_day estimate
}

// New creates an empty server.
func New() *Server {
	return &Server{
		nextID: 1,
		fail:   make(map[string]int),
		rate:   DefaultRate,
		hours:  make(map[string]float64),
	}
}

// Start serves s on an httptest server closed at test cleanup and returns
// the base URL including the /api prefix.
func Start(t testing.TB, s *Server) string {
	t.Helper()
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

// Router returns the mux router with every route registered.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.record)
	api.HandleFunc("/yaranai-items", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/yaranai-items", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/yaranai-items/{id:[0-9]+}", s.handleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/yaranai-items/{id:[0-9]+}", s.handleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/income-settings", s.handleIncome).Methods(http.MethodPost)
	return r
}

// Seed appends items, assigning IDs when zero. It returns the stored items.
func (s *Server) Seed(items ...domain.Item) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if it.ID == 0 {
			it.ID = s.nextID
		}
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
		s.items = append(s.items, it)
		out = append(out, it)
	}
	return out
}

// Fail makes every request matching method and route template answer with
// status. Templates are "/yaranai-items", "/yaranai-items/{id}" and
// "/income-settings".
func (s *Server) Fail(method, route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method+" "+route] = status
}

// Recover clears every configured failure.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = make(map[string]int)
}

// SetRate replaces the hourly-rate derivation.
func (s *Server) SetRate(fn RateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = fn
}

// EstimateHours makes items titled title carry an hours_per_day estimate
// after create or update.
func (s *Server) EstimateHours(title string, hours float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hours[title] = hours
}

// Items returns a copy of the stored items.
func (s *Server) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Item(nil), s.items...)
}

// Calls returns a copy of every request seen so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many requests matched method (any path when
// path is "").
func (s *Server) CallCount(method, path string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && (path == "" || c.Path == path) {
			n++
		}
	}
	return n
}

// ── middleware and handlers ──────────────────────────────────────────────────

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			var raw json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
				body = raw
			}
		}
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			Body:      body,
		})
		status := s.failureFor(r)
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		r.Body = http.NoBody
		ctx := withBody(r.Context(), body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// failureFor must be called with s.mu held.
func (s *Server) failureFor(r *http.Request) int {
	route := mux.CurrentRoute(r)
	if route == nil {
		return 0
	}
	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return 0
	}
	tmpl = trimAPIPrefix(tmpl)
	if tmpl == "/yaranai-items/{id:[0-9]+}" {
		tmpl = "/yaranai-items/{id}"
	}
	return s.fail[r.Method+" "+tmpl]
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Items())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p domain.ItemPayload
	if err := decodeBody(r, &p); err != nil || p.Title == "" {
		http.Error(w, "title is required", http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	item := domain.Item{ID: s.nextID, Title: p.Title, Description: p.Description}
	s.applyEstimate(&item)
	s.nextID++
	s.items = append(s.items, item)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	var p domain.ItemPayload
	if err := decodeBody(r, &p); err != nil || p.Title == "" {
		http.Error(w, "title is required", http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Title = p.Title
			s.items[i].Description = p.Description
			s.applyEstimate(&s.items[i])
			writeJSON(w, http.StatusOK, s.items[i])
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	var in domain.IncomeSetting
	if err := decodeBody(r, &in); err != nil || !in.IncomeType.Valid() || in.Amount < 0 {
		http.Error(w, "invalid income setting", http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	rate := s.rate(in)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.IncomeResult{HourlyRate: rate})
}

// applyEstimate must be called with s.mu held.
func (s *Server) applyEstimate(item *domain.Item) {
	if h, ok := s.hours[item.Title]; ok {
		item.HoursPerDay = &h
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
