package httpx

import (
	"bytes"
	"html/template"
	"io"
	"log/slog"
	"net/http"
)

// Renderer abstracts template execution for easier testing.
// Typically implemented by a thin wrapper around html/template.
type Renderer interface {
	Execute(w http.ResponseWriter, data any) error
}

// TemplateRenderer implements Renderer using html/template.
type TemplateRenderer struct{ T *template.Template }

func (tr TemplateRenderer) Execute(w http.ResponseWriter, data any) error {
	return tr.T.Execute(w, data)
}

// errorPageData supplies fields for the generic error template.
// Title and Message must be short and never leak internal state.
type errorPageData struct {
	baseView
	Status  int
	Title   string
	Message string
}

// captureWriter buffers template output and any status the template might set.
type captureWriter struct {
	buf    bytes.Buffer
	header http.Header
	status int
}

func newCaptureWriter() *captureWriter               { return &captureWriter{header: make(http.Header)} }
func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }
func (c *captureWriter) WriteHeader(status int)      { c.status = status }

// renderTemplate renders an HTML template with no-store caching. Output is
// buffered so a mid-render template failure yields a clean 500 instead of a
// half-written page.
func renderTemplate(w http.ResponseWriter, tmpl Renderer, data any) {
	w.Header().Set("Cache-Control", "no-store")
	cw := newCaptureWriter()
	if err := tmpl.Execute(cw, data); err != nil {
		slog.Error("render", "domain", "ui", "action", "error")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("template error"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	status := cw.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if cw.buf.Len() > 0 {
		_, _ = io.Copy(w, bytes.NewReader(cw.buf.Bytes()))
	}
}

// renderErrorPage renders the HTML error page when a template is configured,
// else a plain-text status line.
func (h *Handler) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	if h.ErrorTmpl == nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, http.StatusText(status))
		return
	}
	cw := newCaptureWriter()
	data := errorPageData{baseView: h.baseView(r), Status: status, Title: title, Message: message}
	if err := h.ErrorTmpl.Execute(cw, data); err != nil {
		slog.Error("render", "domain", "ui", "action", "error")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("template error"))
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if cw.buf.Len() > 0 {
		_, _ = io.Copy(w, bytes.NewReader(cw.buf.Bytes()))
	}
}
