// Package drafts splits raw completion output into individual email drafts.
package drafts

import (
	"regexp"
	"strings"

	"github.com/bnema/fanthom/internal/domain"
)

var (
	ruleRegex = regexp.MustCompile(`-{3,}`)
	lineBreak = regexp.MustCompile(`\r?\n`)

	labelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)draft`),
		regexp.MustCompile(`(?i)subject:`),
		regexp.MustCompile(`^#+`),
		regexp.MustCompile(`^\s*\*+`),
	}
)

// Parse returns at most domain.MaxDrafts drafts from raw. Fewer drafts, or
// none for blank input, are valid results.
func Parse(raw string) []domain.Draft {
	cleaned := ruleRegex.ReplaceAllString(raw, "")
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	var drafts []domain.Draft
	for _, segment := range strings.Split(cleaned, domain.DraftDelimiter) {
		draft := stripLabels(strings.TrimSpace(segment))
		if draft == "" {
			continue
		}
		drafts = append(drafts, draft)
		if len(drafts) == domain.MaxDrafts {
			break
		}
	}

	if len(drafts) == 0 && !strings.Contains(cleaned, domain.DraftDelimiter) {
		return []domain.Draft{strings.TrimSpace(cleaned)}
	}

	return drafts
}

// Join is the inverse of Parse for drafts that carry no label lines.
func Join(drafts []domain.Draft) string {
	return strings.Join(drafts, "\n"+domain.DraftDelimiter+"\n")
}

func stripLabels(segment string) string {
	lines := lineBreak.Split(segment, -1)
	kept := lines[:0]
	for _, line := range lines {
		if isLabel(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isLabel(line string) bool {
	for _, pattern := range labelPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
