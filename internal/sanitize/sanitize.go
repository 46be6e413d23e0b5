// Package sanitize cleans and validates the free-form fields of a generation
// request before they reach a prompt or a stored record.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bnema/fanthom/internal/domain"
	"golang.org/x/text/unicode/norm"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

const (
	companyStripChars = "<>#"
	textStripChars    = "<>#{}"
)

// Sanitize returns the clean form of raw under rule. It never fails; a clean
// value may still violate the rule's limits.
func Sanitize(raw string, rule Rule) string {
	s := norm.NFC.String(raw)
	s = removeControlChars(s)
	s = htmlTagRegex.ReplaceAllString(s, "")

	switch rule.Kind {
	case KindName:
		s = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsSpace(r) || r == '\'' || r == '-' {
				return r
			}
			return -1
		}, s)
	case KindCompany:
		s = removeChars(s, companyStripChars)
	default:
		s = removeChars(s, textStripChars)
	}

	return normalizeWhitespace(s)
}

// Validate lists every constraint of rule that clean violates.
func Validate(clean string, rule Rule) []domain.Violation {
	var violations []domain.Violation
	add := func(message string) {
		violations = append(violations, domain.Violation{Field: rule.Field, Label: rule.Label, Message: message})
	}

	if clean == "" {
		if rule.Required {
			add("is required")
		}
		return violations
	}

	if rule.MaxChars > 0 && utf8.RuneCountInString(clean) > rule.MaxChars {
		add(fmt.Sprintf("must be %d characters or less", rule.MaxChars))
	}
	if rule.MaxWords > 0 && WordCount(clean) > rule.MaxWords {
		add(fmt.Sprintf("must be %d words or less", rule.MaxWords))
	}
	if rule.SingleSentence && !IsSingleSentence(clean) {
		add("must be a single sentence")
	}

	return violations
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// IsSingleSentence reports whether s holds at most one terminal punctuation mark.
func IsSingleSentence(s string) bool {
	return strings.Count(s, ".")+strings.Count(s, "!")+strings.Count(s, "?") <= 1
}

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

func removeChars(s string, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

func removeControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
