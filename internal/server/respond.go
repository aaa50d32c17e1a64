package server

import (
	"encoding/json"
	"net/http"

	"github.com/daschober/planesketch/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForCode maps structured error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeEntityNotFound,
		errors.ErrCodeSessionNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidExpression,
		errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidKind,
		errors.ErrCodeInvalidScene,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidInput:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusForCode(code)
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
