package prompt

import (
	"strings"
	"unicode"
)

type keywordRule struct {
	keywords []string
	value    string
}

var painRules = []keywordRule{
	{keywords: []string{"sdr", "bdr", "development"}, value: "SDRs spending hours on manual research instead of booking meetings"},
	{keywords: []string{"sales", "revenue", "cro", "account"}, value: "outbound volume but replies stuck under 5%"},
	{keywords: []string{"marketing", "demand", "growth"}, value: "leads slipping through pipeline before sales follows up"},
	{keywords: []string{"founder", "cofounder", "ceo", "owner", "president"}, value: "pipeline growth stalling without a repeatable outbound motion"},
	{keywords: []string{"ops", "operations", "revops", "enablement"}, value: "manual emails and disconnected tools slowing the team down"},
}

var categoryRules = []keywordRule{
	{keywords: []string{"email", "emails", "outreach", "outbound", "sequence", "sequences", "cold"}, value: "SaaS outbound optimization"},
	{keywords: []string{"crm", "pipeline", "deal", "deals", "forecast", "forecasting"}, value: "pipeline management"},
	{keywords: []string{"analytics", "dashboard", "dashboards", "reporting", "insights", "metrics"}, value: "sales analytics"},
	{keywords: []string{"ai", "automation", "automate", "automates", "assistant", "agent"}, value: "sales automation"},
	{keywords: []string{"lead", "leads", "prospect", "prospects", "prospecting", "enrichment", "data"}, value: "lead generation"},
}

// InferPrimaryPain picks the dominant pain point for a prospect job title.
func InferPrimaryPain(title string) string {
	if value, ok := match(title, painRules); ok {
		return value
	}
	return DefaultPainPoints[0]
}

// InferCategory picks the topical category of a product/service description.
func InferCategory(productService string) string {
	if value, ok := match(productService, categoryRules); ok {
		return value
	}
	return DefaultCategory
}

// InferSocialProofStyle describes how proof should be framed given which of
// the proof fields were supplied.
func InferSocialProofStyle(client, result string) string {
	hasClient := strings.TrimSpace(client) != ""
	hasResult := strings.TrimSpace(result) != ""

	switch {
	case hasClient && hasResult:
		return "case study + metrics"
	case hasResult:
		return "metric-led result"
	case hasClient:
		return "named client reference"
	default:
		return "peer comparison"
	}
}

// match returns the value of the first rule whose keyword appears as a whole
// token in text. Rule order decides ties.
func match(text string, rules []keywordRule) (string, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "", false
	}

	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if _, ok := tokens[keyword]; ok {
				return rule.value, true
			}
		}
	}

	return "", false
}

func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		tokens[field] = struct{}{}
	}
	return tokens
}
