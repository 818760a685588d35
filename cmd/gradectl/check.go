package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shreedharkb/Speechify/internal/client"
)

func newCheckCmd(opts *options) *cobra.Command {
	var skipSemantic bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run smoke checks against the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var checks []client.Check
			for _, check := range client.SmokeChecks() {
				if skipSemantic && check.Semantic {
					continue
				}
				checks = append(checks, check)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range client.RunChecks(cmd.Context(), opts.client(), checks) {
				mark := "✓"
				if !res.Passed {
					mark = "✗"
					failed++
				}
				fmt.Fprintf(out, "%s %s\n", mark, res.Name)
				if res.Detail != "" {
					fmt.Fprintf(out, "  %s\n", res.Detail)
				}
			}

			fmt.Fprintf(out, "\n%d/%d checks passed\n", len(checks)-failed, len(checks))
			if failed > 0 {
				return fmt.Errorf("%d checks failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipSemantic, "skip-semantic", false, "skip checks that need a sentence-embedding model")
	return cmd
}
