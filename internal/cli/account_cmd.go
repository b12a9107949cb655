package cli

import (
	"fmt"

	"github.com/alexanderramin/flashbox/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newResetCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all saved card progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !a.interactive() {
					return fmt.Errorf("refusing to reset progress without --yes: %w", ErrNotInteractive)
				}
				ok, err := a.confirm("Reset all your flashcard progress? This cannot be undone.")
				if err != nil {
					return fmt.Errorf("confirming reset: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Reset cancelled."))
					return nil
				}
			}

			if !a.State.Store.Clear(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleYellow.Render(
					"Progress cleared for this run, but the change could not be saved."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Progress reset."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newWhoamiCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the learner identity attached to reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIdentity(a.State.Identity.Email()))
			return nil
		},
	}
}

func newLoginCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login EMAIL",
		Short: "Set the learner email attached to reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.State.Identity.Save(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIdentity(a.State.Identity.Email()))
			return nil
		},
	}
}
