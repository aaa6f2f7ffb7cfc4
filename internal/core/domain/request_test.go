package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateRequest_FileName(t *testing.T) {
	tests := []struct {
		name     string
		template string
		source   string
		group    string
		want     string
	}{
		{
			name:   "no template falls back to source name",
			source: "Worksheet",
			group:  "Team A",
			want:   "Worksheet - Team A",
		},
		{
			name:     "template with placeholder",
			template: "Week 1 ({})",
			source:   "Worksheet",
			group:    "Team A",
			want:     "Week 1 (Team A)",
		},
		{
			name:     "template without placeholder gets suffix",
			template: "Week 1",
			source:   "Worksheet",
			group:    "Team A",
			want:     "Week 1 - Team A",
		},
		{
			name:     "multiple placeholders all substituted",
			template: "{} - {}",
			source:   "Worksheet",
			group:    "A",
			want:     "A - A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := DuplicateRequest{NameTemplate: tt.template}
			assert.Equal(t, tt.want, req.FileName(tt.source, tt.group))
		})
	}
}

func TestDuplicateRequest_StripStyle(t *testing.T) {
	req := DuplicateRequest{}
	assert.Equal(t, DefaultAnswerStyle, req.StripStyle())

	req.AnswerStyle = "HEADING_5"
	assert.Equal(t, "HEADING_5", req.StripStyle())
}

func TestParseConflictMode(t *testing.T) {
	tests := []struct {
		in   string
		want ConflictMode
		ok   bool
	}{
		{"", ConflictNever, true},
		{"never", ConflictNever, true},
		{"skip", ConflictSkip, true},
		{"OVERWRITE", ConflictOverwrite, true},
		{"both", ConflictKeepBoth, true},
		{"merge", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseConflictMode(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRunSummary_Counts(t *testing.T) {
	var s RunSummary
	s.Add(GroupResult{Group: "A", Outcome: OutcomeDone})
	s.Add(GroupResult{Group: "B", Outcome: OutcomeSkipped})
	s.Add(GroupResult{Group: "C", Outcome: OutcomeFailed})

	done, skipped, failed := s.Counts()
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, failed)
	assert.False(t, s.Succeeded())
}

func TestRunSummary_SucceededWithShareFailure(t *testing.T) {
	var s RunSummary
	s.Add(GroupResult{
		Group:   "A",
		Outcome: OutcomeDone,
		Shares: []ShareStatus{
			{Email: "alice@x.com"},
			{Email: "bad@x.com", Err: assert.AnError},
		},
	})

	assert.False(t, s.Succeeded(), "recipient failures count against full success")
}
