// Package i18n translates the dashboard's user-facing strings.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	LatestDeploys = "Latest deploys"
	TrackDeploys  = "Track deploys"
	Unknown       = "unknown"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		LatestDeploys: "Latest deploys",
		TrackDeploys:  "Track deploys",
		Unknown:       "unknown",
	},
	language.German: {
		LatestDeploys: "Letzte Deployments",
		TrackDeploys:  "Deployments verfolgen",
		Unknown:       "unbekannt",
	},
	language.Spanish: {
		LatestDeploys: "Últimos despliegues",
		TrackDeploys:  "Seguir despliegues",
		Unknown:       "desconocido",
	},
	language.French: {
		LatestDeploys: "Derniers déploiements",
		TrackDeploys:  "Suivre les déploiements",
		Unknown:       "inconnu",
	},
}

// supported lists the catalog languages; the first entry is the default.
var supported = []language.Tag{
	language.English,
	language.German,
	language.Spanish,
	language.French,
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, tag := range supported {
		for key, msg := range translations[tag] {
			// SetString only fails for malformed messages; these are plain strings.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Translator maps message keys to display strings in a single language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for the closest supported match of tag.
func New(tag language.Tag) *Translator {
	_, index, _ := matcher.Match(tag)
	matched := supported[index]
	return &Translator{
		tag:     matched,
		printer: message.NewPrinter(matched, message.Catalog(cat)),
	}
}

// ForLocale parses a BCP 47 locale such as "de" or "es-MX". Unparsable
// locales fall back to English.
func ForLocale(locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		return New(language.English)
	}
	return New(tag)
}

// ForRequest picks a language from an explicit override, then an
// Accept-Language header, then the fallback locale.
func ForRequest(override, acceptLanguage, fallback string) *Translator {
	if override != "" {
		if tag, err := language.Parse(override); err == nil {
			return New(tag)
		}
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return New(supported[index])
			}
		}
	}
	return ForLocale(fallback)
}

// Tag is the language the translator renders.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Translate returns the display string for key. Unknown keys are returned
// unchanged.
func (t *Translator) Translate(key string) string {
	return t.printer.Sprintf(message.Reference(key))
}
