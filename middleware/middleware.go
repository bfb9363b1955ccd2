// Package middleware adapts schema validation to HTTP JSON boundaries:
// request bodies are decoded and validated before the wrapped handler runs,
// and issue reports are shaped into JSON error payloads.
package middleware

import (
	"context"
	"io"
	"net/http"

	j "github.com/goccy/go-json"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/source"
)

// ctxKeyValidated is a typed context key for storing a validated body.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValidated[T any] struct{}

// ContextWithValidated attaches a validated body to the context.
func ContextWithValidated[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValidated[T]{}, v)
}

// ValidatedFromContext retrieves the validated body from the context.
func ValidatedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValidated[T]{}).(T)
	return v, ok
}

// ErrorPayload shapes issues for JSON responses.
func ErrorPayload(iss shaper.Issues) map[string]any {
	out := make([]map[string]any, len(iss))
	for i, it := range iss {
		out[i] = map[string]any{
			"code":    it.Code,
			"path":    it.Path.String(),
			"message": it.Message,
		}
	}
	return map[string]any{"issues": out}
}

// ValidateJSON wraps next so the request body must validate against s.
// Decode and validation failures write a 422 with an issues payload;
// transport faults produce a 400. The validated value is reachable from the
// request context via ValidatedFromContext.
func ValidateJSON[T any](s shaper.Schema[T], next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "unreadable body", http.StatusBadRequest)
			return
		}
		v, err := source.ParseJSON[T](r.Context(), s, body)
		if err != nil {
			iss, ok := shaper.AsIssues(err)
			if !ok {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusUnprocessableEntity, ErrorPayload(iss))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithValidated(r.Context(), v)))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = j.NewEncoder(w).Encode(payload)
}
