package web

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const contextKeyRequestID contextKey = "requestID"

// HeaderRequestID carries the request id, in and out.
const HeaderRequestID = "X-Request-Id"

// RequestID returns the id attached to ctx by the middleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// statusRecorder remembers the status code written.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withMiddleware rate limits the handler and attaches a request id.
func (s *Server) withMiddleware(route string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, id)
		r = r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			WriteError(rec, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded, "rate limit exceeded", true)
		} else {
			handler(rec, r)
		}

		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		log.Printf("%s %s %d %v [%s]", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond), id)
	}
}
