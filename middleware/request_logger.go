package middleware

import (
	"net/http"
	"time"

	"github.com/fatih/color"
)

// RequestLoggerMiddleware prints one colored line per request: green for
// success, yellow for client errors, red for server errors.
func RequestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{w, http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		switch {
		case ww.statusCode >= http.StatusInternalServerError:
			color.Red("[%d] %s %s from %s (%s)", ww.statusCode, r.Method, r.URL.Path, ClientIP(r), duration)
		case ww.statusCode >= http.StatusBadRequest:
			color.Yellow("[%d] %s %s from %s (%s)", ww.statusCode, r.Method, r.URL.Path, ClientIP(r), duration)
		default:
			color.Green("[%d] %s %s from %s (%s)", ww.statusCode, r.Method, r.URL.Path, ClientIP(r), duration)
		}
	})
}
