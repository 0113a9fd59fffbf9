package middleware

import (
	"encoding/json"
	"net/http"

	"coastal-realty/utils/errors"
	"coastal-realty/utils/logger"
)

var errorLog = logger.NewNop()

// SetLogger sets the logger used by WriteError for server errors.
func SetLogger(log logger.Logger) {
	if log != nil {
		errorLog = log
	}
}

// RecoverMiddleware turns a panic in a handler into a 500 JSON response.
func RecoverMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						logger.Any("panic", rec),
						logger.String("method", r.Method),
						logger.String("path", r.URL.Path),
					)
					WriteError(w, errors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError writes err as a JSON APIError. Non-API errors become 500s.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := errors.Wrap(err, "UNKNOWN_ERROR", "Unexpected error", errors.ErrInternal.Status)
	if apiErr.Status >= http.StatusInternalServerError {
		errorLog.Error("server error",
			logger.String("code", apiErr.Code),
			logger.String("details", apiErr.Details),
		)
	}

	WriteJSON(w, apiErr.Status, apiErr)
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errorLog.Warn("encode response", logger.Error(err))
	}
}
