package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	ledgerrender "github.com/bnema/fanthom/internal/adapters/render/ledger"
	"github.com/bnema/fanthom/internal/application"
	"github.com/bnema/fanthom/internal/domain"
)

type balanceOutput struct {
	UserID  string `json:"userId"`
	Credits int64  `json:"credits"`
}

type historyOutput struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Change       int64     `json:"change"`
	BalanceAfter int64     `json:"balanceAfter"`
	Timestamp    time.Time `json:"timestamp"`
}

func newCreditsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Inspect and manage user credit balances",
	}

	cmd.AddCommand(
		newCreditsBalanceCmd(app),
		newCreditsInitCmd(app),
		newCreditsGrantCmd(app),
		newCreditsHistoryCmd(app),
	)

	return cmd
}

func newCreditsBalanceCmd(app *app) *cobra.Command {
	var userID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show a user's balance, creating it with the starting credits if new",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			credits, err := app.ledger.Balance(cmd.Context(), uid)
			if err != nil {
				return presentError(err)
			}

			if asJSON {
				return writeJSON(cmd, balanceOutput{UserID: string(uid), Credits: credits})
			}
			return writeSummary(cmd, app, ledgerrender.Summary{
				UserID:   uid,
				Credits:  credits,
				Starting: domain.DefaultStartingCredits,
				Cost:     application.GenerationCost,
			})
		},
	}

	bindUserFlag(cmd, &userID)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newCreditsInitCmd(app *app) *cobra.Command {
	var userID string
	var amount int64

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Overwrite a user's balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			if err := app.ledger.Initialize(cmd.Context(), uid, amount); err != nil {
				return presentError(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "set %s to %d credits\n", uid, amount)
			return err
		},
	}

	bindUserFlag(cmd, &userID)
	cmd.Flags().Int64Var(&amount, "amount", domain.DefaultStartingCredits, "New balance")

	return cmd
}

func newCreditsGrantCmd(app *app) *cobra.Command {
	var userID string
	var amount int64
	var entryType string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Add credits as a manual top-up or refund",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			balance, err := app.ledger.Grant(cmd.Context(), uid, amount, domain.EntryType(entryType))
			if err != nil {
				return presentError(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "granted %d credits to %s (balance %d)\n", amount, uid, balance)
			return err
		},
	}

	bindUserFlag(cmd, &userID)
	cmd.Flags().Int64Var(&amount, "amount", 0, "Credits to add")
	cmd.Flags().StringVar(&entryType, "type", string(domain.EntryTypeManual), "History entry type (manual|refund)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newCreditsHistoryCmd(app *app) *cobra.Command {
	var userID string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a user's credit history, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uid, err := requireUser(userID)
			if err != nil {
				return err
			}

			credits, err := app.ledger.Balance(cmd.Context(), uid)
			if err != nil {
				return presentError(err)
			}
			entries, err := app.ledger.History(cmd.Context(), uid, limit)
			if err != nil {
				return presentError(err)
			}

			if asJSON {
				out := make([]historyOutput, 0, len(entries))
				for _, e := range entries {
					out = append(out, historyOutput{
						ID:           e.ID,
						Type:         string(e.Type),
						Change:       e.Change,
						BalanceAfter: e.BalanceAfter,
						Timestamp:    e.Timestamp,
					})
				}
				return writeJSON(cmd, out)
			}

			if entries == nil {
				entries = []domain.HistoryEntry{}
			}
			return writeSummary(cmd, app, ledgerrender.Summary{
				UserID:   uid,
				Credits:  credits,
				Starting: domain.DefaultStartingCredits,
				Cost:     application.GenerationCost,
				History:  entries,
			})
		},
	}

	bindUserFlag(cmd, &userID)
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func writeSummary(cmd *cobra.Command, app *app, sum ledgerrender.Summary) error {
	rendered, err := app.summaryRenderer(sum, ledgerrender.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render credits: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
