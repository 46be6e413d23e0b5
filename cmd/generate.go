package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	ledgerrender "github.com/bnema/fanthom/internal/adapters/render/ledger"
	"github.com/bnema/fanthom/internal/application"
	"github.com/bnema/fanthom/internal/domain"
)

type generateOutput struct {
	UserID  string             `json:"userId"`
	Drafts  []string           `json:"drafts"`
	Credits int64              `json:"credits"`
	Fields  domain.EmailFields `json:"fields"`
	SavedID string             `json:"savedId,omitempty"`
}

func newGenerateCmd(app *app) *cobra.Command {
	var userID string
	var fields domain.EmailFields
	var cta string
	var save int
	var asJSON bool
	var noSpinner bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: fmt.Sprintf("Generate two email drafts (costs %d credits)", application.GenerationCost),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uid, err := requireUser(userID)
			if err != nil {
				return err
			}
			if save < 0 || save > domain.MaxDrafts {
				return fmt.Errorf("--save must be between 0 and %d", domain.MaxDrafts)
			}
			fields.CTAType = domain.CTAType(cta)

			generator, err := app.generator(cmd.Context())
			if err != nil {
				return err
			}

			var result application.GenerationResult
			generate := func(ctx context.Context, observer application.Observer) error {
				g := generator
				if observer != nil {
					g = generator.WithObserver(observer)
				}
				var genErr error
				result, genErr = g.Generate(ctx, uid, fields)
				return genErr
			}

			if asJSON || noSpinner {
				err = generate(cmd.Context(), nil)
			} else {
				err = runGenerateSpinner(cmd.Context(), cmd.ErrOrStderr(), generate)
			}
			if err != nil {
				return presentError(err)
			}

			out := generateOutput{
				UserID:  string(uid),
				Drafts:  result.Drafts,
				Credits: result.Balance,
				Fields:  result.Fields,
			}
			if out.Drafts == nil {
				out.Drafts = []string{}
			}

			if save > 0 {
				if save > len(result.Drafts) {
					return fmt.Errorf("draft %d was not generated", save)
				}
				saved, err := generator.SaveDraft(cmd.Context(), uid, result.Fields, result.Drafts[save-1])
				if err != nil {
					return presentError(err)
				}
				out.SavedID = saved.ID
			}

			if asJSON {
				return writeJSON(cmd, out)
			}

			rendered, err := app.generationRenderer(ledgerrender.Generation{Drafts: result.Drafts, Credits: result.Balance})
			if err != nil {
				return fmt.Errorf("render drafts: %w", err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
				return err
			}
			if out.SavedID != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved draft %d as %s\n", save, out.SavedID)
			}
			return err
		},
	}

	bindUserFlag(cmd, &userID)
	bindFieldFlags(cmd, &fields, &cta)
	cmd.Flags().IntVar(&save, "save", 0, "Save draft N (1 or 2) after generating")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "Disable the progress spinner")

	return cmd
}
