package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fanthom",
		Short:         "Fanthom: credit-gated AI sales email drafts",
		Long:          "fanthom turns prospect and sender facts into two AI-written outbound email drafts, charging credits from a per-user ledger. It also serves the same pipeline over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.Close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newCreditsCmd(app),
		newGenerateCmd(app),
		newDraftsCmd(app),
		newSecretCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

var errUserRequired = errors.New("a user id is required (--user)")
