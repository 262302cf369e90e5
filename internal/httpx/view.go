package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vanishlink/vanish/internal/domain"
	"github.com/vanishlink/vanish/internal/metrics"
	"github.com/vanishlink/vanish/internal/retrieval"
)

// SecretView supplies the viewer page template data. The secret text inside
// State lives only for this render; nothing is cached or persisted.
type SecretView struct {
	baseView
	Code  string
	State retrieval.State
}

// handleViewSecret serves GET and POST /s/{code}. GET performs the initial
// fetch without a password; POST resubmits with the password entered on the
// challenge form. Every user action maps to exactly one upstream GET.
func (h *Handler) handleViewSecret(w http.ResponseWriter, r *http.Request) {
	if h.SecretTmpl == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("secret template unavailable"))
		return
	}
	code, err := domain.ParseCode(chi.URLParam(r, "code"))
	if err != nil {
		h.renderErrorPage(w, r, http.StatusNotFound, "Not Found", "")
		return
	}

	password := ""
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			h.renderErrorPage(w, r, http.StatusBadRequest, "Bad Request", "")
			return
		}
		password = r.PostFormValue("password")
	}

	start := time.Now()
	state := retrieval.Fetch(r.Context(), h.Client, retrieval.State{}, code.String(), password)
	h.observe(metrics.SummaryUpstreamLatencyMS, time.Since(start).Milliseconds())

	cid, _ := GetCorrelationID(r.Context())
	switch state.Phase {
	case retrieval.Revealed:
		h.inc(metrics.CounterSecretsRevealed)
	case retrieval.PasswordRequired:
		h.inc(metrics.CounterPasswordChallenges)
	case retrieval.Failed:
		h.inc(metrics.CounterUpstreamErrors)
	}
	// Log the phase only; never the body, code, or password.
	slog.Info("secret view", "domain", "view", "cid", cid, "phase", state.Phase.String())

	renderTemplate(w, h.SecretTmpl, SecretView{
		baseView: h.baseView(r),
		Code:     code.String(),
		State:    state,
	})
}
