// Package match ranks *arr lookup results against a free-text title so the
// CLI can add a movie or series by name.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sequel numerals II-IX. "I" and "X" stay words ("I, Robot", "American History X").
var romanNumerals = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

var leadingArticles = []string{"the", "a", "an"}

// CleanTitle folds a title into a comparable form: lower case, no accents or
// punctuation, no leading article, sequel numerals as digits.
func CleanTitle(title string) string {
	s := strings.ToLower(stripAccents(title))

	s = strings.NewReplacer(
		"&", " and ",
		"'", "",
		"’", "",
		"-", " ",
		".", " ",
		"_", " ",
	).Replace(s)

	// Subtitles after a colon may start with their own article.
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = dropArticle(strings.Fields(part))
	}
	s = strings.Join(parts, " ")

	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)

	words := strings.Fields(s)
	for i, w := range words {
		if i == 0 {
			continue
		}
		if arabic, ok := romanNumerals[w]; ok {
			words[i] = arabic
		}
	}
	return strings.Join(words, " ")
}

func dropArticle(words []string) string {
	if len(words) > 1 {
		for _, art := range leadingArticles {
			if words[0] == art {
				words = words[1:]
				break
			}
		}
	}
	return strings.Join(words, " ")
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
