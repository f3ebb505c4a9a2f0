package extractor

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips diacritics so rule lookups match accented
// input ("sévère" matches "severe"). The transformer chain is built per call
// because norm/runes transformers carry state and are not safe to share.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// titleCase renders a drug or outcome label for display ("aspirin" -> "Aspirin").
// cases.Caser instances are stateful, so one is created per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// token is a single word with both its original spelling and its folded form.
type token struct {
	text  string
	lower string
}

// isTitleCased reports whether the token started with an uppercase letter in
// the original text, a cheap proxy for a proper noun.
func (t token) isTitleCased() bool {
	for _, r := range t.text {
		return unicode.IsUpper(r)
	}
	return false
}

// tokenize splits a report into sentences of word tokens. Sentences break on
// terminal punctuation; words keep internal hyphens and apostrophes so
// "life-threatening" survives as one token.
func tokenize(text string) [][]token {
	var sents [][]token

	for _, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == ';'
	}) {
		words := strings.FieldsFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
		})

		var sent []token
		for _, w := range words {
			w = strings.Trim(w, "-'")
			if w == "" {
				continue
			}
			sent = append(sent, token{text: w, lower: fold(w)})
		}

		if len(sent) > 0 {
			sents = append(sents, sent)
		}
	}

	return sents
}
