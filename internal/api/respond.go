package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/notepid/flockr/internal/apperr"
)

// JSONError writes a JSON error body with the given status and code.
func JSONError(w http.ResponseWriter, status int, code apperr.Code, message string) {
	_ = JSONWrite(w, status, map[string]string{"code": string(code), "message": message})
}

// JSONWrite writes v as JSON with the given status code.
func JSONWrite(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	return json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, v any) {
	if v == nil {
		v = struct{}{}
	}
	_ = JSONWrite(w, http.StatusOK, v)
}

// fail maps err to a status and writes it. Errors without a code are
// logged and reported as internal.
func fail(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	var ae *apperr.AppError
	if !errors.As(err, &ae) {
		log.Printf("api: internal error: %v", err)
		JSONError(w, http.StatusInternalServerError, apperr.CodeInternal, "internal error")
		return
	}
	JSONError(w, statusOf(code), code, ae.Message)
}

func statusOf(code apperr.Code) int {
	switch code {
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodePermissionDenied:
		return http.StatusForbidden
	case apperr.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperr.CodeAlreadyExists, apperr.CodeFailedPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
