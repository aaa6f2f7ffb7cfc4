package domain

// GroupOutcome is the terminal state of one group's workflow.
type GroupOutcome string

const (
	// OutcomeDone means the copy was created and every share was attempted.
	// Individual recipient failures do not change the outcome.
	OutcomeDone GroupOutcome = "done"
	// OutcomeSkipped means a file with the target name already existed,
	// so the group was assumed to be processed by an earlier run.
	OutcomeSkipped GroupOutcome = "skipped"
	// OutcomeFailed means an unrecoverable error (usually the copy) stopped
	// the group's workflow.
	OutcomeFailed GroupOutcome = "failed"
)

// ShareStatus records one recipient's share attempt.
type ShareStatus struct {
	// Email is the recipient address.
	Email string

	// Err is the share failure for this recipient, nil on success.
	Err error
}

// GroupResult is the per-group outcome, retained only for the run summary.
type GroupResult struct {
	// Group is the group name.
	Group string

	// Outcome is the terminal state.
	Outcome GroupOutcome

	// FileID is the created duplicate's Drive ID (empty unless Done).
	FileID string

	// FileName is the duplicate's rendered name.
	FileName string

	// Shares holds one entry per attempted recipient.
	Shares []ShareStatus

	// Err is the unrecoverable error when Outcome is Failed.
	Err error
}

// ShareFailures returns the share attempts that failed.
func (r *GroupResult) ShareFailures() []ShareStatus {
	var failed []ShareStatus
	for _, s := range r.Shares {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// RunSummary accumulates group results over a run. Only the orchestrator
// appends to it; it is not persisted.
type RunSummary struct {
	Results []GroupResult
}

// Add appends a group result.
func (s *RunSummary) Add(r GroupResult) {
	s.Results = append(s.Results, r)
}

// Counts returns the number of done, skipped and failed groups.
func (s *RunSummary) Counts() (done, skipped, failed int) {
	for i := range s.Results {
		switch s.Results[i].Outcome {
		case OutcomeDone:
			done++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return done, skipped, failed
}

// Succeeded reports whether every group ended Done or Skipped and no
// recipient share failed. This drives the process exit code.
func (s *RunSummary) Succeeded() bool {
	for i := range s.Results {
		if s.Results[i].Outcome == OutcomeFailed {
			return false
		}
		if len(s.Results[i].ShareFailures()) > 0 {
			return false
		}
	}
	return true
}
