// Package i18n provides the built-in message catalogs and locale negotiation
// for the web frontend. Catalogs are compiled in; negotiation follows an
// explicit cookie override first, then the Accept-Language header via
// golang.org/x/text language matching. Missing keys fall back to English so
// a partial catalog never renders a blank label.
package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLocale is used when negotiation yields nothing usable.
const DefaultLocale = "en"

var supported = []language.Tag{
	language.English, // first entry doubles as the fallback
	language.German,
	language.French,
}

var matcher = language.NewMatcher(supported)

// Translator resolves message keys for one locale.
type Translator struct {
	locale   string
	messages map[string]string
}

// Locale returns the resolved locale code (e.g. "en", "de").
func (t *Translator) Locale() string { return t.locale }

// T returns the message for key, falling back to English and finally to the
// key itself so templates always render something greppable.
func (t *Translator) T(key string) string {
	if msg, ok := t.messages[key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// For returns the Translator for an exact locale code, or English when the
// locale has no catalog.
func For(locale string) *Translator {
	if msgs, ok := catalogs[locale]; ok {
		return &Translator{locale: locale, messages: msgs}
	}
	return &Translator{locale: DefaultLocale, messages: catalogs[DefaultLocale]}
}

// Negotiate picks the best catalog for a request. cookie is the value of the
// language override cookie (may be empty); acceptLanguage is the raw
// Accept-Language header (may be empty or malformed).
func Negotiate(cookie, acceptLanguage string) *Translator {
	var prefs []language.Tag
	if cookie != "" {
		if tag, err := language.Parse(cookie); err == nil {
			prefs = append(prefs, tag)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			prefs = append(prefs, tags...)
		}
	}
	if len(prefs) == 0 {
		return For(DefaultLocale)
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return For(DefaultLocale)
	}
	base, _ := supported[idx].Base()
	return For(base.String())
}

// Locales lists the locale codes with a catalog, in display order.
func Locales() []string { return []string{"en", "de", "fr"} }
