// Package translation provides static dictionary lookups that render outcome
// labels in the supported frontend languages (French and Swahili). Language
// codes are validated with golang.org/x/text language tags so regional
// variants like fr-FR resolve to the right dictionary.
package translation

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotAvailable is returned for outcome labels missing from the dictionary.
const NotAvailable = "Translation N/A"

// supportedLanguages are the dictionary languages, matched by base tag.
var supportedLanguages = []language.Tag{
	language.French,
	language.Swahili,
}

// outcomeTranslations maps canonical outcome labels to their translations.
var outcomeTranslations = map[string]map[string]string{
	"Recovered": {"fr": "Récupéré", "sw": "Amepona"},
	"Improved":  {"fr": "Amélioré", "sw": "Kupata nafuu"},
	"Ongoing":   {"fr": "En cours", "sw": "Inaendelea"},
	"Fatal":     {"fr": "Fatal", "sw": "Mbaya"},
	"Unknown":   {"fr": "Inconnu", "sw": "Haijulikani"},
}

// Dictionary implements the interfaces.Translator contract over the static
// outcome table.
type Dictionary struct {
	matcher language.Matcher
}

// NewDictionary creates a translation dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		matcher: language.NewMatcher(supportedLanguages),
	}
}

// ParseLanguage validates a requested language and returns its canonical
// base code ("fr" or "sw"). Regional variants are accepted.
func (d *Dictionary) ParseLanguage(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("language must be 'fr' (French) or 'sw' (Swahili), got: %s", lang)
	}

	_, index, conf := d.matcher.Match(tag)
	if conf < language.High {
		return "", fmt.Errorf("language must be 'fr' (French) or 'sw' (Swahili), got: %s", lang)
	}

	base, _ := supportedLanguages[index].Base()
	return base.String(), nil
}

// Translate returns the translation of an outcome label in the given
// canonical language code. The label is title-cased before lookup so
// "recovered" and "RECOVERED" hit the same entry; labels missing from the
// dictionary return the not-available marker.
func (d *Dictionary) Translate(outcome, lang string) string {
	label := cases.Title(language.English).String(outcome)

	byLanguage, ok := outcomeTranslations[label]
	if !ok {
		return NotAvailable
	}

	translation, ok := byLanguage[lang]
	if !ok {
		return NotAvailable
	}
	return translation
}

// CanonicalLabel returns the title-cased form used as dictionary key.
func (d *Dictionary) CanonicalLabel(outcome string) string {
	return cases.Title(language.English).String(outcome)
}
