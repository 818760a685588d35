package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreedharkb/Speechify/internal/api"
)

func newBatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Grade a batch request read from a JSON file (- for stdin)",
		Long: `Grade a batch request. FILE holds a /batch-grade body:

  {"threshold": 0.85, "answers": [{"questionText": "...", "studentAnswer": "...", "correctAnswer": "..."}]}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readBatchFile(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			resp, err := opts.client().BatchGrade(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func readBatchFile(stdin io.Reader, path string) (api.BatchGradeRequest, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return api.BatchGradeRequest{}, err
		}
		defer f.Close()
		r = f
	}

	var req api.BatchGradeRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return api.BatchGradeRequest{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return req, nil
}
