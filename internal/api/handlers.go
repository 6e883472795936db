package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/satoqz/basti/internal/task"
)

const defaultListLimit = 50

// handleCreate implements POST /api/tasks.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(s.log, w, errBadRequest, err)
		return
	}

	t, err := s.ops.Create(r.Context(), time.Duration(req.Duration)*time.Millisecond, req.Priority)
	if err != nil {
		writeError(s.log, w, errInternal, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskToDTO(t))
}

// handleList implements GET /api/tasks.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var state *task.State
	if raw := r.URL.Query().Get("state"); raw != "" {
		parsed, err := task.ParseState(raw)
		if err != nil {
			writeError(s.log, w, errBadRequest, err)
			return
		}
		state = &parsed
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(s.log, w, errBadRequest, err)
			return
		}
		limit = parsed
	}

	rows, err := s.ops.List(r.Context(), state, limit)
	if err != nil {
		writeError(s.log, w, errInternal, err)
		return
	}

	dtos := make([]TaskDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, taskToDTO(row.Task))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// handleFind implements GET /api/tasks/{id}.
func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(s.log, w, errBadRequest, err)
		return
	}

	found, err := s.ops.FindByID(r.Context(), id)
	if err != nil {
		writeError(s.log, w, errInternal, err)
		return
	}
	if found == nil {
		writeError(s.log, w, errNotFound, errTaskNotFound(id))
		return
	}

	writeJSON(w, http.StatusOK, taskToDTO(found.Task))
}

// handleCancel implements DELETE /api/tasks/{id}.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(s.log, w, errBadRequest, err)
		return
	}

	cancelled, err := s.ops.Cancel(r.Context(), id)
	if err != nil {
		writeError(s.log, w, errInternal, err)
		return
	}
	if cancelled == nil {
		writeError(s.log, w, errNotFound, errTaskNotFound(id))
		return
	}

	writeJSON(w, http.StatusOK, taskToDTO(*cancelled))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errTaskNotFound(id uuid.UUID) error {
	return &taskNotFoundError{id: id}
}

type taskNotFoundError struct{ id uuid.UUID }

func (e *taskNotFoundError) Error() string { return "task " + e.id.String() + " does not exist" }
