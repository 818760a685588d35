package grader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shreedharkb/Speechify/internal/grader"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Paris", "paris"},
		{"  Paris \n", "paris"},
		{"Two  Words", "two  words"},
		{"ÉCOLE", "école"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, grader.Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestShortcut(t *testing.T) {
	_, ok := grader.Shortcut("London", "Paris")
	assert.False(t, ok)

	res, ok := grader.Shortcut("", "")
	assert.True(t, ok)
	assert.Equal(t, grader.ExplanationNoAnswer, res.Explanation)

	res, ok = grader.Shortcut("Berlin", "")
	assert.True(t, ok)
	assert.Equal(t, grader.ExplanationNoCorrectAnswer, res.Explanation)

	res, ok = grader.Shortcut("berlin", "BERLIN ")
	assert.True(t, ok)
	assert.Equal(t, grader.Result{IsCorrect: true, SimilarityScore: 1, Explanation: grader.ExplanationExactMatch}, res)
}
