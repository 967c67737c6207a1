package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/justestif/sparkify-etl/internal/db"
)

// Limits for /songplays/top-users.
const (
	DefaultTopUsers = 10
	MaxTopUsers     = 100
)

// Handlers contains HTTP handlers for the report API.
type Handlers struct {
	reader Reader
	log    logrus.FieldLogger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(reader Reader, log logrus.FieldLogger) *Handlers {
	return &Handlers{reader: reader, log: log}
}

type userResponse struct {
	UserID    int    `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	Level     string `json:"level"`
}

// Health reports database reachability (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.reader.Ping(r.Context()); err != nil {
		h.log.Warnf("health check: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stats returns row counts per table (GET /stats).
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reader.Stats(r.Context())
	if err != nil {
		h.serverError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// User returns one user dimension row (GET /users/{userID}).
func (h *Handlers) User(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.reader.User(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "user", err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Gender:    user.Gender,
		Level:     user.Level,
	})
}

// TopUsers returns the most active users (GET /songplays/top-users?limit=N).
func (h *Handlers) TopUsers(w http.ResponseWriter, r *http.Request) {
	limit := DefaultTopUsers
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, MaxTopUsers)
	}

	users, err := h.reader.TopUsers(r.Context(), limit)
	if err != nil {
		h.serverError(w, "top users", err)
		return
	}
	if users == nil {
		users = []db.UserPlays{}
	}
	writeJSON(w, http.StatusOK, users)
}

// PlaysByHour returns play counts per hour of day (GET /songplays/by-hour).
func (h *Handlers) PlaysByHour(w http.ResponseWriter, r *http.Request) {
	hours, err := h.reader.PlaysByHour(r.Context())
	if err != nil {
		h.serverError(w, "plays by hour", err)
		return
	}
	if hours == nil {
		hours = []db.HourPlays{}
	}
	writeJSON(w, http.StatusOK, hours)
}

func (h *Handlers) serverError(w http.ResponseWriter, what string, err error) {
	h.log.Errorf("%s: %v", what, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
