package httpx

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplateBuffersOutput(t *testing.T) {
	tmpl := TemplateRenderer{T: template.Must(template.New("ok").Parse("<p>{{.Code}}</p>"))}
	rec := httptest.NewRecorder()
	renderTemplate(rec, tmpl, SecretView{Code: "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "<p>abc</p>", rec.Body.String())
}

func TestRenderTemplateFailureYieldsCleanError(t *testing.T) {
	// Execution fails at the method call, after the first chunk was emitted.
	tmpl := TemplateRenderer{T: template.Must(template.New("boom").Parse(`partial {{.Missing.Deref}}`))}
	rec := httptest.NewRecorder()
	renderTemplate(rec, tmpl, SecretView{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "template error", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "partial", "half-written page must not leak")
}

func TestRenderErrorPageWithoutTemplate(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	rec := httptest.NewRecorder()
	h.renderErrorPage(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "Not Found", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusNotFound), rec.Body.String())
}

func TestRenderErrorPageWithTemplate(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	tmpl := template.Must(template.New("err").Parse("{{.Status}}: {{.Title}}"))
	h.ErrorTmpl = TemplateRenderer{T: tmpl}
	rec := httptest.NewRecorder()
	h.renderErrorPage(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, "Not Found", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "404: Not Found"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
