// Package web carries per-request values through the mock server's
// middleware chain.
package web

import (
	"context"
	"net/http"
)

type ctxKey string

// WithValue attaches a value to the request's context under key.
func WithValue(r *http.Request, key string, value any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey(key), value))
}

// Value retrieves a typed value previously attached under key.
func Value[T any](r *http.Request, key string) (T, bool) {
	val := r.Context().Value(ctxKey(key))
	if val == nil {
		var zero T
		return zero, false
	}
	tVal, ok := val.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return tVal, true
}
