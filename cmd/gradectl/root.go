package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shreedharkb/Speechify/internal/client"
)

const defaultURL = "http://localhost:5002"

type options struct {
	url     string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.url, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	url := os.Getenv("GRADER_URL")
	if url == "" {
		url = defaultURL
	}

	root := &cobra.Command{
		Use:   "gradectl",
		Short: "Client for the semantic grading service",
		Long: `gradectl sends answers to a running grading service.

Example usage:
  gradectl health
  gradectl grade --student "paris" --correct "Paris"
  gradectl batch answers.json
  gradectl check --skip-semantic`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.url, "url", url, "grading service base URL (env GRADER_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")

	root.AddCommand(
		newHealthCmd(opts),
		newGradeCmd(opts),
		newBatchCmd(opts),
		newCheckCmd(opts),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
