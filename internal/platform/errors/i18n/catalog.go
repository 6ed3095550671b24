// Package i18n provides localized user messages for domain error codes.
package i18n

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// BaseLocale is the canonical locale every lookup falls back to.
const BaseLocale = "en-US"

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var catalogs = map[string]*Catalog{
	BaseLocale: NewCatalog(BaseLocale, enUSMessages),
}

// GetCatalog returns the catalog best matching locale.
// Falls back to en-US if no catalog matches.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}
	if c, ok := lookupCatalog(requested); ok {
		return c
	}
	if resolved, ok := matchLocale(requested); ok {
		if c, ok := lookupCatalog(resolved); ok {
			return c
		}
	}
	c, _ := lookupCatalog(BaseLocale)
	return c
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func lookupCatalog(locale string) (*Catalog, bool) {
	cat, ok := catalogs[locale]
	return cat, ok
}

// matchLocale resolves requested (a tag or an Accept-Language value) against
// the known catalogs.
func matchLocale(requested string) (string, bool) {
	locales := make([]string, 0, len(catalogs))
	locales = append(locales, BaseLocale)
	for locale := range catalogs {
		if locale != BaseLocale {
			locales = append(locales, locale)
		}
	}

	tags := make([]language.Tag, 0, len(locales))
	names := make([]string, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, locale)
	}
	if len(tags) == 0 {
		return "", false
	}
	_, index, confidence := language.NewMatcher(tags).Match(language.Make(requested))
	if confidence == language.No {
		if desired, _, err := language.ParseAcceptLanguage(requested); err == nil && len(desired) > 0 {
			_, index, confidence = language.NewMatcher(tags).Match(desired...)
		}
	}
	if confidence == language.No {
		return "", false
	}
	return names[index], true
}
