package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/fanthom/internal/domain"
)

func newDraftsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage saved drafts",
	}

	cmd.AddCommand(newDraftsSaveCmd(app))

	return cmd
}

func newDraftsSaveCmd(app *app) *cobra.Command {
	var userID string
	var fields domain.EmailFields
	var cta string
	var text string
	var textFile string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save an edited draft with the fields it was written for",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uid, err := requireUser(userID)
			if err != nil {
				return err
			}
			fields.CTAType = domain.CTAType(cta)

			if textFile != "" {
				text, err = readText(cmd, textFile)
				if err != nil {
					return err
				}
			}

			saved, err := app.draftSaver().SaveDraft(cmd.Context(), uid, fields, text)
			if err != nil {
				return presentError(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved draft %s\n", saved.ID)
			return err
		},
	}

	bindUserFlag(cmd, &userID)
	bindFieldFlags(cmd, &fields, &cta)
	cmd.Flags().StringVar(&text, "text", "", "Draft text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "Read draft text from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")

	return cmd
}

func readText(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read draft from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read draft file: %w", err)
	}
	return string(data), nil
}
