// Package prompt renders the instruction documents sent to the completion
// service. Everything here is pure: identical input yields identical output.
package prompt

import (
	"fmt"
	"strings"

	"github.com/bnema/fanthom/internal/domain"
)

// SystemInstruction is the system message of every completion request.
const SystemInstruction = "You are a professional sales email writer. Generate compelling, personalized sales emails based on the provided context."

// Build renders the master prompt for sanitized fields. Blank optional fields
// fall back to static defaults or to values inferred from the other fields.
func Build(fields domain.EmailFields) string {
	differentiator := orDefault(fields.KeyDifferentiator, DefaultKeyDifferentiator)
	proofClient := orDefault(fields.SocialProofClient, DefaultSocialProofClient)
	proofResult := orDefault(fields.SocialProofResult, DefaultSocialProofResult)
	proofStyle := InferSocialProofStyle(fields.SocialProofClient, fields.SocialProofResult)
	primaryPain := orDefault(fields.PrimaryPain, InferPrimaryPain(fields.ProspectTitle))
	authority := orDefault(fields.SignatureLine, DefaultAuthorityLine)
	cta := fields.CTAType
	if cta == "" {
		cta = domain.CTAColdOutreach
	}

	var sb strings.Builder
	sb.WriteString("You are an elite B2B sales copywriter for SaaS companies with 50-100 employees. ")
	sb.WriteString("Write cold emails that earn opens, replies and booked demos for high-velocity outbound teams. ")
	sb.WriteString("Every email must read like a personal 1:1 note from one senior SaaS sales leader to another, never generic, corporate or AI-sounding.\n\n")

	sb.WriteString("## CONTEXT\n")
	writeItem(&sb, "Sender Company", fields.CompanyName)
	writeItem(&sb, "Sender Name & Title", fields.SenderNameTitle)
	writeItem(&sb, "Product/Service", fields.ProductService)
	writeItem(&sb, "Key Differentiator", differentiator)
	writeItem(&sb, "Prospect", fmt.Sprintf("%s, %s at %s", fields.ProspectFirstName, fields.ProspectTitle, fields.ProspectCompany))
	writeItem(&sb, "Context/Trigger", DefaultContextTrigger)
	writeItem(&sb, "Category", InferCategory(fields.ProductService))
	writeItem(&sb, "Target Department", DefaultTargetDepartment)
	writeItem(&sb, "Current Workflow", DefaultCurrentWorkflow)
	writeItem(&sb, "Social Proof", proofClient+" → "+proofResult)
	writeItem(&sb, "Social Proof Style", proofStyle)
	writeItem(&sb, "Free Value Offer", DefaultFreeValueOffer+" (lead with it in the body)")
	writeItem(&sb, "Tone", Tone)
	writeItem(&sb, "CTA Type", string(cta))
	writeItem(&sb, "Core Pain Points", strings.Join(painPoints(primaryPain), ", "))
	writeItem(&sb, "PRIMARY Pain", primaryPain)
	sb.WriteString("\n")

	sb.WriteString("## SAFETY RULES\n")
	sb.WriteString("- Do not invent prospect details, metrics, client names or results\n")
	sb.WriteString("- Do not promise metrics that were not provided\n")
	sb.WriteString("- No meta-comments about the email itself\n")
	sb.WriteString("- No all-caps words and no repeated punctuation\n")
	sb.WriteString("- At most 1 link, no attachments, no spam trigger words\n\n")

	sb.WriteString("## STRUCTURE RULES\n")
	sb.WriteString("- BODY: 75-100 words, 3-5 sentences of roughly 10-14 words, 2-3 paragraphs with no block longer than 3 lines\n")
	sb.WriteString("- Reading level: 6th grade; pipeline, SDR, outbound and demo booking are fine, buzzwords are not\n")
	sb.WriteString("- FRAMEWORK: PAS, in this order\n")
	sb.WriteString("  1. Hook (≤20 words): use the exact context trigger\n")
	fmt.Fprintf(&sb, "  2. Problem (≤20 words): the PRIMARY pain (%s)\n", primaryPain)
	sb.WriteString("  3. Agitate (≤20 words): quantify the cost with a number or percentage when possible\n")
	fmt.Fprintf(&sb, "  4. Solution + Proof (≤25 words): include social proof framed as %s\n", proofStyle)
	fmt.Fprintf(&sb, "  5. CTA (8-20 words): %s\n\n", ctaGuidance(cta))

	sb.WriteString("## PSYCHOLOGICAL TRIGGERS\n")
	sb.WriteString("- Reciprocity: offer the free value first\n")
	sb.WriteString("- Social proof: one comparable SaaS client\n")
	sb.WriteString("- Loss aversion: quantify lost leads\n")
	sb.WriteString("- Authority: the signature shows outbound expertise\n")
	sb.WriteString("- Commitment: a yes/no CTA\n\n")

	sb.WriteString("## FORMATTING\n")
	sb.WriteString("- Plain text only\n")
	sb.WriteString("- Signature exactly 3 lines:\n")
	fmt.Fprintf(&sb, "  %s\n", fields.SenderNameTitle)
	fmt.Fprintf(&sb, "  %s\n", fields.CompanyName)
	fmt.Fprintf(&sb, "  B2B SaaS outbound | %s\n\n", authority)

	sb.WriteString("## OUTPUT\n")
	sb.WriteString("- The email body followed by the signature, nothing else\n")
	sb.WriteString("- No subject line, no analysis, no variant labels, no markdown\n\n")

	sb.WriteString("## QUALITY CHECK (any failure means rewrite)\n")
	sb.WriteString("- Word count 75-100\n")
	sb.WriteString("- 3-5 sentences in 2-3 paragraphs\n")
	sb.WriteString("- Reciprocity, social proof and loss aversion all present\n")
	sb.WriteString("- CTA answerable in 1-3 words\n")
	sb.WriteString("- Uses the exact context trigger\n")
	sb.WriteString("- USE ONLY PROVIDED CONTEXT. DO NOT ASSUME OR FILL ANY MISSING FIELDS.")

	return sb.String()
}

func ctaGuidance(cta domain.CTAType) string {
	switch cta {
	case domain.CTAFollowUp:
		return "a warm second touch offering a 15 minute walkthrough or the sequence teardown"
	case domain.CTADemoRequest:
		return "ask for a short demo slot this week with a 1-3 word answer"
	case domain.CTADealClosing:
		return "confirm the next concrete step toward signing with a 1-3 word answer"
	default:
		return "a cold first touch tied to the prospect company and the PRIMARY pain, answerable in 1-3 words"
	}
}

func painPoints(primary string) []string {
	points := []string{primary}
	for _, point := range DefaultPainPoints {
		if point != primary {
			points = append(points, point)
		}
	}
	return points
}

func writeItem(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "- %s: %s\n", label, value)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
