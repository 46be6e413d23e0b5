package domain

import "strings"

type CTAType string

const (
	CTAColdOutreach CTAType = "Cold Outreach"
	CTAFollowUp     CTAType = "Follow-Up"
	CTADemoRequest  CTAType = "Demo Request"
	CTADealClosing  CTAType = "Deal Closing"
)

// CTATypes lists the accepted call-to-action types in display order.
var CTATypes = []CTAType{CTAColdOutreach, CTAFollowUp, CTADemoRequest, CTADealClosing}

// ParseCTAType matches raw case-insensitively against the known types.
// A blank value yields CTAColdOutreach.
func ParseCTAType(raw string) (CTAType, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CTAColdOutreach, true
	}
	for _, cta := range CTATypes {
		if strings.EqualFold(trimmed, string(cta)) {
			return cta, true
		}
	}
	return CTAType(trimmed), false
}

// EmailFields is the typed input of one generation request. The same type
// carries raw form values and their sanitized counterparts.
type EmailFields struct {
	CompanyName       string  `json:"companyName"`
	SenderNameTitle   string  `json:"senderNameTitle"`
	ProductService    string  `json:"productService"`
	ProspectFirstName string  `json:"prospectFirstName"`
	ProspectCompany   string  `json:"prospectCompany"`
	ProspectTitle     string  `json:"prospectTitle"`
	CTAType           CTAType `json:"ctaType"`

	KeyDifferentiator string `json:"keyDifferentiator,omitempty"`
	PrimaryPain       string `json:"primaryPain,omitempty"`
	SocialProofClient string `json:"socialProofClient,omitempty"`
	SocialProofResult string `json:"socialProofResult,omitempty"`
	SignatureLine     string `json:"signatureLine,omitempty"`
}
