package httpx

import (
	"net/http"
	"strings"

	"github.com/vanishlink/vanish/internal/config"
	"github.com/vanishlink/vanish/internal/i18n"
)

// Cookie names for the presentational preferences. Neither carries secret
// material; both are plain presentation toggles.
const (
	themeCookie  = "theme"
	localeCookie = "lang"
)

// baseView carries the fields every page template needs.
type baseView struct {
	Tr       *i18n.Translator
	Theme    string
	BasePath string
	Path     string // current request path, echoed into the prefs redirect
	Locales  []string
}

// baseView resolves theme and locale for the request.
func (h *Handler) baseView(r *http.Request) baseView {
	return baseView{
		Tr:       h.translatorFor(r),
		Theme:    h.themeFor(r).String(),
		BasePath: h.BasePath,
		Path:     r.URL.Path,
		Locales:  i18n.Locales(),
	}
}

// translatorFor negotiates the locale: cookie override, then Accept-Language,
// then the configured default.
func (h *Handler) translatorFor(r *http.Request) *i18n.Translator {
	cookie := ""
	if c, err := r.Cookie(localeCookie); err == nil {
		cookie = c.Value
	}
	accept := r.Header.Get("Accept-Language")
	if cookie == "" && accept == "" {
		return i18n.For(h.DefaultLocale)
	}
	return i18n.Negotiate(cookie, accept)
}

// themeFor reads the theme cookie, falling back to the configured default.
func (h *Handler) themeFor(r *http.Request) config.Theme {
	if c, err := r.Cookie(themeCookie); err == nil {
		if th, perr := config.ParseTheme(c.Value); perr == nil {
			return th
		}
	}
	if h.DefaultTheme != "" {
		return h.DefaultTheme
	}
	return config.ThemeAuto
}

// handlePrefs implements POST /prefs: stores theme and/or language cookies
// and redirects back to a local page. Invalid values are ignored rather than
// surfaced; preferences are best-effort.
func (h *Handler) handlePrefs(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderErrorPage(w, r, http.StatusBadRequest, "Bad Request", "")
		return
	}
	cookiePath := h.BasePath
	if cookiePath == "" {
		cookiePath = "/"
	}
	if v := r.PostFormValue("theme"); v != "" {
		if th, err := config.ParseTheme(v); err == nil {
			http.SetCookie(w, &http.Cookie{
				Name: themeCookie, Value: th.String(), Path: cookiePath,
				MaxAge: 365 * 24 * 3600, SameSite: http.SameSiteLaxMode, HttpOnly: true,
			})
		}
	}
	if v := r.PostFormValue("lang"); v != "" {
		if tr := i18n.For(v); tr.Locale() == v {
			http.SetCookie(w, &http.Cookie{
				Name: localeCookie, Value: v, Path: cookiePath,
				MaxAge: 365 * 24 * 3600, SameSite: http.SameSiteLaxMode, HttpOnly: true,
			})
		}
	}
	http.Redirect(w, r, h.localRedirect(r.PostFormValue("redirect")), http.StatusSeeOther)
}

// localRedirect constrains a redirect target to this site. Anything absolute
// or protocol-relative falls back to the index page.
func (h *Handler) localRedirect(target string) string {
	home := h.BasePath
	if home == "" {
		home = "/"
	}
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return home
	}
	return target
}
