package driving

import (
	"context"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

// Duplicator runs the duplicate-and-share workflow: one copy per roster
// group, each shared with that group's recipients. Groups are processed
// sequentially and independently; the summary carries per-group outcomes.
type Duplicator interface {
	// Run executes the workflow. It returns an error only for fatal
	// conditions (inaccessible source, unresolvable destination); per-group
	// failures are recorded in the summary instead.
	Run(ctx context.Context, req domain.DuplicateRequest, roster domain.Roster) (*domain.RunSummary, error)
}

// TreeCopier copies a Drive folder recursively.
type TreeCopier interface {
	// Run copies the folder tree. Returns the ID of the created top-level
	// folder, or empty when nothing was created (everything skipped).
	Run(ctx context.Context, req domain.CopyTreeRequest) (string, error)
}

// RosterLoader turns a roster reference (local path, "-" for stdin, or a
// Drive file ID/URL) into a parsed Roster.
type RosterLoader interface {
	Load(ctx context.Context, ref string, layout domain.Layout, groupColumn int) (domain.Roster, []domain.RosterWarning, error)
}
