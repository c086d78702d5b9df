package main

import (
	"errors"

	"github.com/aretw0/stepflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var errAPIUnavailable = errors.New("execution API unavailable")

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Validate that the execution API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadRuntime(cmd)
		if err != nil {
			return err
		}

		out := env.editor(nil).CheckStatus(cmd.Context())
		tui.PrintNotification(cmd.OutOrStdout(), out.Notification)
		if !out.OK() {
			return errAPIUnavailable
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
