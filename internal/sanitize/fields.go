package sanitize

import "github.com/bnema/fanthom/internal/domain"

// Fields sanitizes every field of raw and validates the result. All violations
// are collected into a single *domain.ValidationError; the sanitized fields are
// returned either way so callers can echo them back.
func Fields(raw domain.EmailFields) (domain.EmailFields, error) {
	clean := domain.EmailFields{
		CompanyName:       Sanitize(raw.CompanyName, CompanyName),
		SenderNameTitle:   Sanitize(raw.SenderNameTitle, SenderNameTitle),
		ProductService:    Sanitize(raw.ProductService, ProductService),
		ProspectFirstName: Sanitize(raw.ProspectFirstName, ProspectFirstName),
		ProspectCompany:   Sanitize(raw.ProspectCompany, ProspectCompany),
		ProspectTitle:     Sanitize(raw.ProspectTitle, ProspectTitle),
		KeyDifferentiator: Sanitize(raw.KeyDifferentiator, KeyDifferentiator),
		PrimaryPain:       Sanitize(raw.PrimaryPain, PrimaryPain),
		SocialProofClient: Sanitize(raw.SocialProofClient, SocialProofClient),
		SocialProofResult: Sanitize(raw.SocialProofResult, SocialProofResult),
		SignatureLine:     Sanitize(raw.SignatureLine, SignatureLine),
	}

	checks := []struct {
		value string
		rule  Rule
	}{
		{clean.CompanyName, CompanyName},
		{clean.SenderNameTitle, SenderNameTitle},
		{clean.ProductService, ProductService},
		{clean.ProspectFirstName, ProspectFirstName},
		{clean.ProspectCompany, ProspectCompany},
		{clean.ProspectTitle, ProspectTitle},
		{clean.KeyDifferentiator, KeyDifferentiator},
		{clean.PrimaryPain, PrimaryPain},
		{clean.SocialProofClient, SocialProofClient},
		{clean.SocialProofResult, SocialProofResult},
		{clean.SignatureLine, SignatureLine},
	}

	var violations []domain.Violation
	for _, check := range checks {
		violations = append(violations, Validate(check.value, check.rule)...)
	}

	cta, ok := domain.ParseCTAType(string(raw.CTAType))
	clean.CTAType = cta
	if !ok {
		violations = append(violations, domain.Violation{
			Field:   CTAField,
			Label:   "CTA Type",
			Message: "must be one of Cold Outreach, Follow-Up, Demo Request, Deal Closing",
		})
	}

	if len(violations) > 0 {
		return clean, &domain.ValidationError{Violations: violations}
	}

	return clean, nil
}
