package httpx

import (
	"fmt"
	"net/http"
	"time"
)

// expiresLayout matches the value format of <input type="datetime-local">.
const expiresLayout = "2006-01-02T15:04"

// IndexView supplies the creation page template data.
type IndexView struct {
	baseView
	Form           formValues
	Errors         map[string]string // field name -> localized message
	Notice         string            // banner for upstream/transport failures
	Result         *CreatedView      // non-nil after a successful creation
	MaxSecretBytes int64
	MaxSecretHuman string
	MinExpiry      string // datetime-local lower bound for the picker
}

// formValues echoes submitted input so the form stays editable after errors.
// The secret text is echoed back into the page only; it is never logged or
// stored.
type formValues struct {
	Secret    string
	ExpiresAt string
	HitLimit  string
	Password  string
	TZOffset  string
}

// CreatedView carries the upstream-issued shareable link.
type CreatedView struct {
	URL string
}

func humanBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	suffixes := []string{"KB", "MB", "GB", "TB"}
	f := float64(n)
	for _, s := range suffixes {
		f /= 1024
		if f < 1024 {
			return fmt.Sprintf("%.1f %s", f, s)
		}
	}
	return fmt.Sprintf("%.1f PB", f/1024)
}

// indexView builds the default view for the creation page.
func (h *Handler) indexView(r *http.Request) IndexView {
	return IndexView{
		baseView:       h.baseView(r),
		Form:           formValues{HitLimit: "1"},
		Errors:         map[string]string{},
		MaxSecretBytes: h.Limits.MaxSecretBytes,
		MaxSecretHuman: humanBytes(h.Limits.MaxSecretBytes),
		MinExpiry:      h.now().Add(h.Limits.MinTTL).Format(expiresLayout),
	}
}

// handleIndex renders the creation form.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if h.IndexTmpl == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("index unavailable"))
		return
	}
	renderTemplate(w, h.IndexTmpl, h.indexView(r))
}

// handleAbout renders the informational page.
func (h *Handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	if h.AboutTmpl == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("about unavailable"))
		return
	}
	renderTemplate(w, h.AboutTmpl, h.baseView(r))
}

// parseExpiry interprets the submitted expiration. RFC 3339 values carry
// their own zone; datetime-local values are interpreted using the tz_offset
// field (minutes east of UTC) the page's script fills in, defaulting to UTC.
func parseExpiry(value, tzOffset string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	loc := time.UTC
	if tzOffset != "" {
		var mins int
		if _, err := fmt.Sscanf(tzOffset, "%d", &mins); err == nil && mins >= -14*60 && mins <= 14*60 {
			loc = time.FixedZone("submitter", mins*60)
		}
	}
	return time.ParseInLocation(expiresLayout, value, loc)
}
