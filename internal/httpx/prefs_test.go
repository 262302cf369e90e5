package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postPrefs(t *testing.T, h *Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/prefs", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.handlePrefs(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestPrefsSetsThemeCookie(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	rec := postPrefs(t, h, url.Values{"theme": {"dark"}, "redirect": {"/s/abc"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/s/abc", rec.Header().Get("Location"))
	c := cookieNamed(rec, themeCookie)
	require.NotNil(t, c)
	assert.Equal(t, "dark", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.True(t, c.HttpOnly)
}

func TestPrefsSetsLocaleCookie(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	rec := postPrefs(t, h, url.Values{"lang": {"de"}})

	c := cookieNamed(rec, localeCookie)
	require.NotNil(t, c)
	assert.Equal(t, "de", c.Value)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestPrefsIgnoresInvalidValues(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	rec := postPrefs(t, h, url.Values{"theme": {"sepia"}, "lang": {"zz"}})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Nil(t, cookieNamed(rec, themeCookie))
	assert.Nil(t, cookieNamed(rec, localeCookie))
}

func TestPrefsRedirectStaysLocal(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	for _, target := range []string{"https://evil.example/", "//evil.example", "s/abc", ""} {
		rec := postPrefs(t, h, url.Values{"theme": {"light"}, "redirect": {target}})
		assert.Equal(t, "/", rec.Header().Get("Location"), "target %q must not escape the site", target)
	}
}

func TestPrefsCookiePathHonorsBasePath(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	h.BasePath = "/vanish"
	rec := postPrefs(t, h, url.Values{"theme": {"auto"}})

	c := cookieNamed(rec, themeCookie)
	require.NotNil(t, c)
	assert.Equal(t, "/vanish", c.Path)
	assert.Equal(t, "/vanish", rec.Header().Get("Location"))
}

func TestThemeForPrecedence(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "auto", h.themeFor(req).String())

	req.AddCookie(&http.Cookie{Name: themeCookie, Value: "dark"})
	assert.Equal(t, "dark", h.themeFor(req).String())

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: themeCookie, Value: "sepia"})
	assert.Equal(t, "auto", h.themeFor(bad).String(), "garbage cookie falls back to default")
}

func TestTranslatorForPrecedence(t *testing.T) {
	h, _, _ := newTestHandler(&mockClient{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "en", h.translatorFor(req).Locale())

	req.Header.Set("Accept-Language", "fr-CH, fr;q=0.9")
	assert.Equal(t, "fr", h.translatorFor(req).Locale())

	req.AddCookie(&http.Cookie{Name: localeCookie, Value: "de"})
	assert.Equal(t, "de", h.translatorFor(req).Locale(), "cookie wins over Accept-Language")
}
