package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"vitrine-backoffice/config"
	"vitrine-backoffice/models"
)

var logger = config.GetLogger()

// maxBodyBytes bounds request bodies; the legacy import is the largest payload
const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("❌ writeJSON: Error encoding response: %v", err)
	}
}

// writeError maps domain errors to HTTP statuses
func writeError(w http.ResponseWriter, funcName string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		logger.Warnf("❌ %s: %v", funcName, err)
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidInput):
		logger.Warnf("❌ %s: %v", funcName, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidChannelConfig):
		logger.Errorf("❌ %s: %v", funcName, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		config.LogError("controller", funcName, "request failed", nil, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, funcName string, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	logger.Warnf("❌ %s: Method not allowed: %s", funcName, r.Method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// decodeBody decodes the JSON body into req and runs the struct validation tags
func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.Validate, funcName string, req any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Warnf("❌ %s: Failed to decode request body: %v", funcName, err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}

	if v == nil {
		return true
	}
	if err := v.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			logger.Warnf("❌ %s: Validation failed: %s", funcName, strings.Join(msgs, "; "))
			http.Error(w, "Validation failed: "+strings.Join(msgs, "; "), http.StatusBadRequest)
			return false
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// pathParam returns the path segment between prefix and suffix,
// e.g. pathParam("/admin/quotes/abc/status", "/admin/quotes/", "/status") == "abc"
func pathParam(path, prefix, suffix string) (string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == path {
		return "", false
	}
	if suffix != "" {
		trimmed := strings.TrimSuffix(rest, suffix)
		if trimmed == rest {
			return "", false
		}
		rest = trimmed
	}
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// pathID parses a numeric id path segment
func pathID(path, prefix, suffix string) (int64, error) {
	raw, ok := pathParam(path, prefix, suffix)
	if !ok {
		return 0, fmt.Errorf("%w: id parameter is required", models.ErrInvalidInput)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id parameter %q", models.ErrInvalidInput, raw)
	}
	return id, nil
}
