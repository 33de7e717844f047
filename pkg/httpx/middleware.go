package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/aussiebroadwan/invites/pkg/slogx"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recover turns a panicking handler into a 500 and logs the stack.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slogx.FromContext(r.Context()).Error("panic serving request",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
					WriteJSON(w, http.StatusInternalServerError, map[string]string{
						"error": "server_error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
