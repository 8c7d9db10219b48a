package server

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/handlers"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/logging"
)

// Client-facing error messages.
const (
	msgNoFiles      = "No files provided"
	msgMalformed    = "Request body must be a JSON object"
	msgTooLarge     = "Request body too large"
	msgFailed       = "Failed to process files"
	msgPageRender   = "Failed to render page"
	ConvertEndpoint = "/api/html-to-pdf"
)

// errorResponse is the JSON body of every API error.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(ConvertEndpoint, handlers.MethodHandler{
		http.MethodPost: http.HandlerFunc(s.handleConvert),
	})
	mux.Handle("/{$}", readOnly(s.handleIndex))
	mux.Handle("/docs/filename", readOnly(s.handleFilenameDocs))
	mux.Handle("/static/site.css", readOnly(s.handleStyle))
	mux.Handle("/healthz", readOnly(s.handleHealth))

	return mux
}

// readOnly restricts h to GET and HEAD.
func readOnly(h http.HandlerFunc) http.Handler {
	return handlers.MethodHandler{
		http.MethodGet:  h,
		http.MethodHead: h,
	}
}

// handleConvert runs one batch. The body is decoded and checked before any
// browser is launched; a payload problem is a 400, anything later a 500.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	id := RequestIDFrom(r.Context())

	req, err := html2pdf.DecodeRequest(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, msgTooLarge, err)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, clientMessage(err), err)
		return
	}

	// net/http never cancels a handler on WriteTimeout, so the batch gets its
	// own deadline; the converter closes the browser when it fires.
	ctx := r.Context()
	if s.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.WriteTimeout)
		defer cancel()
	}

	bundle, err := s.newConverter(id).Convert(ctx, req)
	if err != nil {
		if html2pdf.IsBadRequest(err) {
			s.writeError(w, r, http.StatusBadRequest, clientMessage(err), err)
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, msgFailed, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", bundle.ContentType)
	h.Set("Content-Disposition", contentDisposition(bundle.Filename))
	h.Set("Content-Length", strconv.Itoa(len(bundle.Body)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(bundle.Body); err != nil {
		s.logger.Warn().Str("request_id", id).Err(err).Msg("writing response")
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, s.pages.index, pageData{Title: "Convert", Page: "index"})
}

func (s *Server) handleFilenameDocs(w http.ResponseWriter, r *http.Request) {
	doc := s.pages.filename
	title := doc.Title
	if title == "" {
		title = "Rename docs"
	}
	s.writePage(w, r, s.pages.docs, pageData{Title: title, Page: "docs", Body: doc.Body, CSS: doc.CSS})
}

func (s *Server) handleStyle(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(s.pages.style)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, t *template.Template, data pageData) {
	data.Version = s.version
	body, err := render(t, data)
	if err != nil {
		s.logger.Error().Str("request_id", RequestIDFrom(r.Context())).Err(err).Msg("rendering page")
		http.Error(w, msgPageRender, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

// writeError logs err and sends {"error": msg}.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	e := s.logger.Warn()
	if status >= http.StatusInternalServerError {
		e = s.logger.Error()
	}
	logging.With(e,
		logging.RequestID(RequestIDFrom(r.Context())),
		logging.Int("status", status),
		logging.ErrorField(err),
	).Msg("request rejected")

	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// clientMessage maps a payload error to the message sent to the client.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, html2pdf.ErrNoFiles):
		return msgNoFiles
	case errors.Is(err, html2pdf.ErrInvalidTransform):
		return "Invalid transform: " + strings.TrimPrefix(err.Error(), html2pdf.ErrInvalidTransform.Error()+": ")
	case errors.Is(err, html2pdf.ErrMalformedRequest):
		return msgMalformed
	default:
		return msgFailed
	}
}

// contentDisposition builds an attachment header. The quoted filename keeps
// printable ASCII only; names outside it also get an RFC 5987 filename*.
func contentDisposition(name string) string {
	var sb strings.Builder
	ascii := true
	for _, r := range name {
		switch {
		case r == '"' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			ascii = false
		case r > 0x7e:
			ascii = false
			sb.WriteByte('_')
		default:
			sb.WriteRune(r)
		}
	}

	header := `attachment; filename="` + sb.String() + `"`
	if !ascii {
		header += "; filename*=UTF-8''" + url.PathEscape(name)
	}
	return header
}
