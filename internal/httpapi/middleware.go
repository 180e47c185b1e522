package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/charmbracelet/log"
	"github.com/felixge/httpsnoop"
	"github.com/rs/cors"

	"todo-backend/internal/ids"
)

type ctxKey string

const (
	requestIDKey    ctxKey = "request_id"
	RequestIDHeader        = "X-Request-Id"
)

// maxDumpBytes caps how much of a response body DebugDump keeps.
const maxDumpBytes = 64 << 10

// RequestIDFromContext returns request id if present.
func RequestIDFromContext(ctx context.Context) string {
	v := ctx.Value(requestIDKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(RequestIDHeader)
		if rid == "" {
			rid = ids.NewID()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		r = r.WithContext(ctx)
		w.Header().Set(RequestIDHeader, rid)

		next.ServeHTTP(w, r)
	})
}

func Logging(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			logger.Info("http_request",
				"rid", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", m.Code,
				"dur", m.Duration,
				"bytes", m.Written,
			)
		})
	}
}

// CORS lets browser clients on any origin call every route.
func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         86400,
	})
	return c.Handler
}

// DebugDump logs every request and response in full at debug level.
func DebugDump(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger.GetLevel() > log.DebugLevel {
				next.ServeHTTP(w, r)
				return
			}

			rid := RequestIDFromContext(r.Context())
			if dump, err := httputil.DumpRequest(r, true); err != nil {
				logger.Warn("dump request failed", "rid", rid, "err", err)
			} else {
				logger.Debug("request", "rid", rid, "dump", string(dump))
			}

			status := http.StatusOK
			var body bytes.Buffer
			ww := httpsnoop.Wrap(w, httpsnoop.Hooks{
				WriteHeader: func(writeHeader httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
					return func(code int) {
						status = code
						writeHeader(code)
					}
				},
				Write: func(write httpsnoop.WriteFunc) httpsnoop.WriteFunc {
					return func(b []byte) (int, error) {
						if room := maxDumpBytes - body.Len(); room > 0 {
							body.Write(b[:min(room, len(b))])
						}
						return write(b)
					}
				},
			})

			next.ServeHTTP(ww, r)

			logger.Debug("response", "rid", rid, "status", status, "body", body.String())
		})
	}
}

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
