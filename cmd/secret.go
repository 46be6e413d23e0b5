package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage completion provider API keys",
	}

	cmd.AddCommand(newSecretSetCmd(app), newSecretDeleteCmd(app))

	return cmd
}

func newSecretSetCmd(app *app) *cobra.Command {
	var provider string
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a provider API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := app.credentials.SetAPIKey(cmd.Context(), provider, value)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s api key at %s\n", provider, ref)
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "openai", "Provider (openai|gemini)")
	cmd.Flags().StringVar(&value, "value", "", "API key")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newSecretDeleteCmd(app *app) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored provider API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.credentials.DeleteAPIKey(cmd.Context(), provider)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "openai", "Provider (openai|gemini)")

	return cmd
}
