package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/fanthom/internal/domain"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// presentError turns pipeline failures into the message shown to the user.
// Provider and storage details were already logged by the application layer.
func presentError(err error) error {
	var validation *domain.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &validation):
		lines := make([]string, 0, len(validation.Violations)+1)
		lines = append(lines, "Please fix the following:")
		for _, v := range validation.Violations {
			lines = append(lines, "  - "+v.String())
		}
		return errors.New(strings.Join(lines, "\n"))
	case errors.Is(err, domain.ErrInsufficientCredits),
		errors.Is(err, domain.ErrCompletionService),
		errors.Is(err, domain.ErrStorage):
		return errors.New(domain.UserMessage(err))
	default:
		return err
	}
}

func requireUser(userID string) (domain.UserID, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errUserRequired
	}
	return domain.UserID(userID), nil
}

func bindUserFlag(cmd *cobra.Command, userID *string) {
	cmd.Flags().StringVar(userID, "user", "", "User ID owning the credits")
	_ = cmd.MarkFlagRequired("user")
}

func bindFieldFlags(cmd *cobra.Command, f *domain.EmailFields, cta *string) {
	flags := cmd.Flags()
	flags.StringVar(&f.CompanyName, "company", "", "Your company name")
	flags.StringVar(&f.SenderNameTitle, "sender", "", "Your name and title")
	flags.StringVar(&f.ProductService, "product", "", "Product or service, one sentence")
	flags.StringVar(&f.ProspectFirstName, "prospect-first-name", "", "Prospect first name")
	flags.StringVar(&f.ProspectCompany, "prospect-company", "", "Prospect company")
	flags.StringVar(&f.ProspectTitle, "prospect-title", "", "Prospect job title")
	flags.StringVar(cta, "cta", string(domain.CTAColdOutreach), fmt.Sprintf("Call to action (%s)", ctaChoices()))
	flags.StringVar(&f.KeyDifferentiator, "differentiator", "", "Key differentiator (optional)")
	flags.StringVar(&f.PrimaryPain, "pain", "", "Prospect's primary pain (optional)")
	flags.StringVar(&f.SocialProofClient, "proof-client", "", "Social proof client (optional)")
	flags.StringVar(&f.SocialProofResult, "proof-result", "", "Social proof result (optional)")
	flags.StringVar(&f.SignatureLine, "signature", "", "Signature line (optional)")
}

func ctaChoices() string {
	names := make([]string, 0, len(domain.CTATypes))
	for _, cta := range domain.CTATypes {
		names = append(names, string(cta))
	}
	return strings.Join(names, "|")
}
