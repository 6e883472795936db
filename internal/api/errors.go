package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// errorKind mirrors the original api/errors.rs's ApiErrorKind: every
// handler failure maps to exactly one of these, never a bare status code
// chosen ad hoc per handler.
type errorKind int

const (
	errInternal errorKind = iota
	errNotFound
	errBadRequest
)

func (k errorKind) statusCode() int {
	switch k {
	case errNotFound:
		return http.StatusNotFound
	case errBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (k errorKind) message() string {
	switch k {
	case errNotFound:
		return "not found"
	case errBadRequest:
		return "bad request"
	default:
		return "internal server error"
	}
}

// writeError logs err at a level matching its severity and writes the
// matching status code and a small JSON body. Internal errors are logged
// with their full detail but never echoed to the client.
func writeError(log *logrus.Entry, w http.ResponseWriter, kind errorKind, err error) {
	entry := log.WithError(err)
	if kind == errInternal {
		entry.Error("request failed")
	} else {
		entry.Warn("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(kind.statusCode())
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind.message()})
}
