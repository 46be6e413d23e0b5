package prompt

import (
	"fmt"
	"strings"

	"github.com/bnema/fanthom/internal/domain"
)

// Request carries the values wrapped around the master prompt when asking for drafts.
type Request struct {
	RecipientName  string
	RecipientEmail string
	Context        string
	Goal           string
	Tone           string
}

// NewRequest derives a draft request from sanitized fields and their rendered master prompt.
func NewRequest(fields domain.EmailFields, master string) Request {
	return Request{
		RecipientName:  fields.ProspectFirstName,
		RecipientEmail: RecipientEmail(fields.ProspectFirstName, fields.ProspectCompany),
		Context:        master,
		Goal:           string(fields.CTAType),
		Tone:           RequestTone,
	}
}

// RecipientEmail builds the placeholder address firstname@company.com.
func RecipientEmail(firstName, company string) string {
	domainPart := strings.Join(strings.Fields(strings.ToLower(company)), "")
	return fmt.Sprintf("%s@%s.com", strings.ToLower(strings.TrimSpace(firstName)), domainPart)
}

// DraftRequest wraps req into the user message that asks for two delimited drafts.
func DraftRequest(req Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d email drafts in plain text only. ", domain.MaxDrafts)
	sb.WriteString("Do NOT include subject line, analysis, variants, markdown, or bold. Return only the full email body text.\n\n")

	fmt.Fprintf(&sb, "Recipient Name: %s\n", req.RecipientName)
	fmt.Fprintf(&sb, "Recipient Email: %s\n", req.RecipientEmail)
	fmt.Fprintf(&sb, "Context: %s\n", req.Context)
	fmt.Fprintf(&sb, "Goal: %s\n", req.Goal)
	fmt.Fprintf(&sb, "Tone: %s\n\n", req.Tone)

	sb.WriteString("Each draft should:\n")
	sb.WriteString("- Address the recipient by name\n")
	sb.WriteString("- Incorporate the provided context naturally\n")
	sb.WriteString("- Align with the specified goal\n")
	sb.WriteString("- Match the desired tone\n")
	sb.WriteString("- Include a clear call-to-action\n\n")

	sb.WriteString("Return only the email body for each draft, separated by the exact delimiter on its own line:\n")
	sb.WriteString(domain.DraftDelimiter)

	return sb.String()
}
