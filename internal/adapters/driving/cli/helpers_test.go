package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

// setupCLITest isolates config and injected services between tests.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv("HANDOUT_CONFIG_DIR", t.TempDir())
	t.Setenv("HANDOUT_CREDENTIALS", "")
	t.Setenv("GOOGLE_APP_CREDENTIALS", "")
	configStore = nil
	resetFlags()
	t.Cleanup(func() {
		configStore = nil
		duplicator = nil
		treeCopier = nil
		rosterLoader = nil
		resetFlags()
	})
}

// resetFlags restores flag-bound package variables to their defaults, since
// cobra keeps parsed values between Execute calls.
func resetFlags() {
	verboseFlag = false
	configDirFlag = ""

	dupDest = ""
	dupMakeDirs = false
	dupName = ""
	dupStrip = false
	dupReplace = ""
	dupStyle = ""
	dupRole = ""
	dupNoEmail = false
	dupMessage = ""
	dupLayout = ""
	dupGroupColumn = 0

	treeMakeDirs = false
	treeConflict = "never"
	treeFollowAll = false
	treeFollowFiles = false
	treeFollowFolders = false
}

// runCommand executes the root command with args and captures its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

type fakeDuplicator struct {
	summary   *domain.RunSummary
	err       error
	gotReq    domain.DuplicateRequest
	gotRoster domain.Roster
}

func (f *fakeDuplicator) Run(
	_ context.Context, req domain.DuplicateRequest, roster domain.Roster,
) (*domain.RunSummary, error) {
	f.gotReq = req
	f.gotRoster = roster
	if f.err != nil {
		return nil, f.err
	}
	if f.summary == nil {
		return &domain.RunSummary{}, nil
	}
	return f.summary, nil
}

type fakeRosterLoader struct {
	roster    domain.Roster
	warnings  []domain.RosterWarning
	err       error
	gotRef    string
	gotLayout domain.Layout
	gotColumn int
}

func (f *fakeRosterLoader) Load(
	_ context.Context, ref string, layout domain.Layout, groupColumn int,
) (domain.Roster, []domain.RosterWarning, error) {
	f.gotRef = ref
	f.gotLayout = layout
	f.gotColumn = groupColumn
	return f.roster, f.warnings, f.err
}

type fakeTreeCopier struct {
	id  string
	err error
	got domain.CopyTreeRequest
}

func (f *fakeTreeCopier) Run(_ context.Context, req domain.CopyTreeRequest) (string, error) {
	f.got = req
	return f.id, f.err
}
