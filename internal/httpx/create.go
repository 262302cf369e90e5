package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vanishlink/vanish/internal/domain"
	"github.com/vanishlink/vanish/internal/i18n"
	"github.com/vanishlink/vanish/internal/metrics"
	"github.com/vanishlink/vanish/internal/upstream"
)

// validate checks structural form constraints before domain validation.
var validate = validator.New()

// createInput is the typed creation submission, shared by the form and JSON
// paths.
type createInput struct {
	Secret    string    `validate:"required"`
	ExpiresAt time.Time `validate:"required"`
	HitLimit  int       `validate:"required,gt=0"`
	Password  string    `validate:"-"`
}

// fieldErrors maps form field names to localized messages.
type fieldErrors map[string]string

// validateCreate runs structural and domain validation and returns the
// derived creation request. It performs no I/O: a submission that fails here
// never reaches the upstream.
func (h *Handler) validateCreate(in createInput, tr *i18n.Translator) (domain.Creation, fieldErrors) {
	errs := fieldErrors{}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "Secret":
					errs["secret"] = tr.T("form.error.secret_required")
				case "ExpiresAt":
					errs["expires_at"] = tr.T("form.error.expires_invalid")
				case "HitLimit":
					errs["hit_limit"] = tr.T("form.error.hits_positive")
				}
			}
		}
		if len(errs) > 0 {
			return domain.Creation{}, errs
		}
	}
	c, err := domain.NewCreation(in.Secret, in.ExpiresAt, in.HitLimit, in.Password, h.now(), h.Limits)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSecretEmpty):
			errs["secret"] = tr.T("form.error.secret_required")
		case errors.Is(err, domain.ErrSecretTooLarge):
			errs["secret"] = tr.T("form.error.secret_too_big")
		case errors.Is(err, domain.ErrExpiryNotFuture):
			errs["expires_at"] = tr.T("form.error.expires_future")
		case errors.Is(err, domain.ErrExpiryTooSoon):
			errs["expires_at"] = tr.T("form.error.expires_too_soon")
		case errors.Is(err, domain.ErrExpiryTooFar):
			errs["expires_at"] = tr.T("form.error.expires_too_far")
		case errors.Is(err, domain.ErrHitLimitInvalid):
			errs["hit_limit"] = tr.T("form.error.hits_positive")
		default:
			errs["secret"] = tr.T("error.unexpected")
		}
		return domain.Creation{}, errs
	}
	return c, nil
}

// submit sends one creation request upstream and records metrics. The
// returned string is the shareable URL on success.
func (h *Handler) submit(r *http.Request, c domain.Creation) (string, error) {
	payload := upstream.CreatePayload{
		Secret:   c.Secret,
		HitLimit: c.HitLimit,
		TTL:      c.TTLSeconds,
	}
	if c.Password != "" {
		pw := c.Password
		payload.Password = &pw
	}
	start := time.Now()
	created, err := h.Client.Create(r.Context(), payload)
	h.observe(metrics.SummaryUpstreamLatencyMS, time.Since(start).Milliseconds())
	cid, _ := GetCorrelationID(r.Context())
	if err != nil {
		h.inc(metrics.CounterUpstreamErrors)
		var se *upstream.StatusError
		if errors.As(err, &se) {
			slog.Warn("create rejected", "domain", "create", "cid", cid, "status", se.Status)
		} else {
			slog.Error("create failed", "domain", "create", "cid", cid, "err_type", "transport")
		}
		return "", err
	}
	h.inc(metrics.CounterLinksCreated)
	slog.Info("link created", "domain", "create", "cid", cid, "ttl_seconds", c.TTLSeconds, "hit_limit", c.HitLimit)
	return created.URL, nil
}

// handleCreateForm implements POST / for plain form submissions.
func (h *Handler) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	if h.IndexTmpl == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("index unavailable"))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderErrorPage(w, r, http.StatusBadRequest, "Bad Request", "")
		return
	}

	view := h.indexView(r)
	view.Form = formValues{
		Secret:    r.PostFormValue("secret"),
		ExpiresAt: r.PostFormValue("expires_at"),
		HitLimit:  r.PostFormValue("hit_limit"),
		Password:  r.PostFormValue("password"),
		TZOffset:  r.PostFormValue("tz_offset"),
	}

	in := createInput{Secret: view.Form.Secret, Password: view.Form.Password}
	if view.Form.ExpiresAt != "" {
		if t, err := parseExpiry(view.Form.ExpiresAt, view.Form.TZOffset); err == nil {
			in.ExpiresAt = t
		} else {
			view.Errors["expires_at"] = view.Tr.T("form.error.expires_invalid")
		}
	}
	if view.Form.HitLimit != "" {
		if n, err := strconv.Atoi(view.Form.HitLimit); err == nil {
			in.HitLimit = n
		} else {
			view.Errors["hit_limit"] = view.Tr.T("form.error.hits_positive")
		}
	}

	if len(view.Errors) == 0 {
		c, errs := h.validateCreate(in, view.Tr)
		if len(errs) > 0 {
			view.Errors = errs
		} else {
			url, err := h.submit(r, c)
			switch {
			case err == nil:
				view.Result = &CreatedView{URL: url}
				// Clear the echoed secret once the link exists.
				view.Form = formValues{HitLimit: "1"}
			default:
				view.Notice = h.noticeFor(err, view.Tr)
			}
		}
	}
	renderTemplate(w, h.IndexTmpl, view)
}

// createRequest is the JSON body for POST /api/links.
type createRequest struct {
	Secret    string `json:"secret"`
	ExpiresAt string `json:"expiresAt"` // RFC 3339
	HitLimit  int    `json:"hitLimit"`
	Password  string `json:"password,omitempty"`
}

// handleCreateJSON implements POST /api/links for the page script.
func (h *Handler) handleCreateJSON(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.Limits.MaxSecretBytes+4096)).Decode(&req); err != nil {
		h.writeError(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}
	tr := h.translatorFor(r)

	in := createInput{Secret: req.Secret, HitLimit: req.HitLimit, Password: req.Password}
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			h.writeFieldErrors(r.Context(), w, fieldErrors{"expires_at": tr.T("form.error.expires_invalid")})
			return
		}
		in.ExpiresAt = t
	}
	c, errs := h.validateCreate(in, tr)
	if len(errs) > 0 {
		h.writeFieldErrors(r.Context(), w, errs)
		return
	}

	url, err := h.submit(r, c)
	if err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) {
			h.writeError(r.Context(), w, se.Status, se.Message)
			return
		}
		h.writeError(r.Context(), w, http.StatusBadGateway, tr.T("error.unexpected"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(struct {
		URL string `json:"url"`
	}{URL: url})
}

// noticeFor renders an upstream failure as a user-facing banner: the
// upstream message verbatim for HTTP rejections, a generic localized notice
// for transport and parse failures.
func (h *Handler) noticeFor(err error, tr *i18n.Translator) string {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return tr.T("error.unexpected")
}
