package main

import (
	"github.com/spf13/cobra"

	"github.com/shreedharkb/Speechify/internal/api"
	"github.com/shreedharkb/Speechify/internal/grader"
)

func newGradeCmd(opts *options) *cobra.Command {
	var (
		req       api.GradeRequest
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade one answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := api.Threshold(threshold)
			req.Threshold = &t

			result, err := opts.client().Grade(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&req.QuestionText, "question", "q", "", "question text")
	cmd.Flags().StringVarP(&req.StudentAnswer, "student", "s", "", "student answer")
	cmd.Flags().StringVarP(&req.CorrectAnswer, "correct", "c", "", "reference answer")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", grader.DefaultThreshold, "pass mark for the similarity score")
	return cmd
}
