// Package api is the thin operational HTTP surface of spec.md §4.3/§6:
// submit, list, find, and cancel, each a direct call into internal/ops
// with no business logic of its own. Supplemented from the original's
// api/mod.rs, api/endpoints.rs, and api/errors.rs split.
package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/satoqz/basti/internal/ops"
)

// Server hosts the task API over a single internal/ops.Ops.
type Server struct {
	ops *ops.Ops
	log *logrus.Entry
}

// NewServer constructs a Server. log defaults to the standard logger's
// entry if nil.
func NewServer(o *ops.Ops, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{ops: o, log: log}
}

// Handler builds the routed http.Handler, using Go 1.22's ServeMux
// pattern routing rather than a third-party router (see DESIGN.md).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tasks", s.handleCreate)
	mux.HandleFunc("GET /api/tasks", s.handleList)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleFind)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleCancel)
	return mux
}
