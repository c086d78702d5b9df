package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/stepflow"
	mermaid "github.com/aretw0/stepflow/internal/presentation/graph"
	"github.com/aretw0/stepflow/internal/presentation/tui"
	"github.com/aretw0/stepflow/pkg/dsl"
	"github.com/aretw0/stepflow/pkg/gateway"
	"github.com/spf13/cobra"
)

var errFlowNotAccepted = errors.New("flow was not accepted")

var runCmd = &cobra.Command{
	Use:   "run <page-key>...",
	Short: "Build a flow from page keys and submit it",
	Long: `Adds one node per page key, in order, connects them in a chain and submits
the resulting steps to the execution API. The API status is validated first.`,
	Example: `  stepflow run home flights passengers payment
  stepflow run flights seats --dry-run --mermaid`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		showGraph, _ := cmd.Flags().GetBool("mermaid")

		store, err := dsl.New(env.catalog).Steps(args...).Build()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if showGraph {
			fmt.Fprintln(out, mermaid.GenerateMermaid(store.Nodes(), store.Edges(), &mermaid.Overlay{ShowOrder: true}))
		}

		if dryRun {
			req, err := gateway.BuildRequest(env.cfg.FlowName, store.Nodes(), env.cfg.StepPolicy, env.logger)
			if err != nil {
				return err
			}
			return printMarkdown(cmd, tui.StepsMarkdown(req))
		}

		editor := env.editor(nil, stepflow.WithStore(store))
		status := editor.CheckStatus(cmd.Context())
		tui.PrintNotification(out, status.Notification)
		if !status.OK() {
			return errAPIUnavailable
		}

		result, err := editor.Execute(cmd.Context())
		if err != nil {
			return err
		}
		tui.PrintNotification(out, result.Notification)
		if result.Request != nil {
			if err := printMarkdown(cmd, tui.StepsMarkdown(*result.Request)); err != nil {
				return err
			}
		}
		if !result.OK() {
			return errFlowNotAccepted
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("dry-run", false, "Print the steps without calling the API")
	runCmd.Flags().Bool("mermaid", false, "Print the flow as a Mermaid diagram")
}
