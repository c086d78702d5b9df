package main

import (
	"fmt"
	"os"

	"github.com/aretw0/stepflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the pages a step can navigate to",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		return printMarkdown(cmd, tui.CatalogMarkdown(env.catalog))
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// printMarkdown renders md with glamour on a terminal and prints it raw otherwise.
func printMarkdown(cmd *cobra.Command, md string) error {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !tui.IsTerminal(f) {
		_, err := fmt.Fprint(out, md)
		return err
	}
	rendered, err := tui.NewRenderer()(md)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
