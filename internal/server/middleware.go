package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/CAFxX/httpcompression"
	"github.com/felixge/httpsnoop"
	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"

	"github.com/alnah/go-html2pdf/internal/logging"
)

// RequestIDHeader carries the correlation ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied IDs.
const maxRequestIDLength = 128

// compressibleTypes lists the content types worth compressing. PDF and ZIP
// bodies are already compressed and are left alone.
var compressibleTypes = []string{
	"application/json",
	"text/css",
	"text/html",
	"text/javascript",
	"text/plain",
}

type ctxKey struct{}

// RequestIDFrom returns the request ID stored in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// middleware wraps h, outermost first: proxy headers, request ID, access
// log, panic recovery, compression.
func (s *Server) middleware(h http.Handler) http.Handler {
	if s.cfg.Compress {
		if compress, err := httpcompression.DefaultAdapter(
			httpcompression.MinSize(1024),
			httpcompression.ContentTypes(compressibleTypes, false),
		); err != nil {
			s.logger.Warn().Err(err).Msg("compression disabled")
		} else {
			h = compress(h)
		}
	}

	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(false),
	)(h)
	h = accessLog(s.logger, h)
	h = requestID(h)

	if s.cfg.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}
	return h
}

// requestID reuses a sane client-supplied X-Request-ID or generates one, and
// echoes it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}

// accessLog writes one structured line per request.
func accessLog(logger *bolt.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		e := logger.Info()
		if m.Code >= http.StatusInternalServerError {
			e = logger.Error()
		}
		logging.With(e,
			logging.RequestID(RequestIDFrom(r.Context())),
			logging.Str("method", r.Method),
			logging.Str("path", r.URL.Path),
			logging.Str("remote", r.RemoteAddr),
			logging.Int("status", m.Code),
			logging.Int("bytes", int(m.Written)),
			logging.Duration(m.Duration),
		).Msg("request")
	})
}

// recoveryLogger adapts bolt to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	logger *bolt.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error().Str("panic", fmt.Sprint(v...)).Msg("handler panic")
}
