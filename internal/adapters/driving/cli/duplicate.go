package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classkit-labs/handout-cli/internal/adapters/driven/config/file"
	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/services"
)

var (
	dupDest        string
	dupMakeDirs    bool
	dupName        string
	dupStrip       bool
	dupReplace     string
	dupStyle       string
	dupRole        string
	dupNoEmail     bool
	dupMessage     string
	dupLayout      string
	dupGroupColumn int
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <source> <roster>",
	Short: "Duplicate a Drive file per roster group and share the copies",
	Long: `Duplicate a Drive file once per roster group and share each copy.

<source> is a Drive file ID or share URL. <roster> is a local CSV path,
'-' for stdin, or a Drive file ID/URL of a CSV file or Google Sheet.

Rosters come in two layouts. Group rows carry a group name followed by
member emails:

  physics-lab,ada@example.edu,grace@example.edu

Individual rows carry one person each (last,first,email); every person
gets their own copy unless --group-column designates a grouping column.
The layout is detected automatically and a header row is skipped.

Groups are processed one at a time. A group whose copy already exists
in the destination is skipped, so an interrupted run can be repeated.

Examples:
  handout duplicate 1AbC...xYz roster.csv
  handout duplicate https://docs.google.com/document/d/1AbC...xYz/edit roster.csv \
    --name "Worksheet - {}" --strip --dest "handouts/term 3" -p
  handout duplicate 1AbC...xYz groups.csv --role commenter --no-email`,
	Args: cobra.ExactArgs(2),
	RunE: runDuplicate,
}

func init() {
	duplicateCmd.Flags().StringVarP(&dupDest, "dest", "d", "",
		"Destination folder ID or path relative to the source's parent")
	duplicateCmd.Flags().BoolVarP(&dupMakeDirs, "make-dirs", "p", false,
		"Create missing destination path segments")
	duplicateCmd.Flags().StringVarP(&dupName, "name", "n", "",
		"Copy name template; {} is replaced with the group name")
	duplicateCmd.Flags().BoolVarP(&dupStrip, "strip", "a", false,
		"Remove answer paragraphs from each copy (Google Docs only)")
	duplicateCmd.Flags().StringVar(&dupReplace, "replace", "",
		"Replacement text for stripped answer paragraphs")
	duplicateCmd.Flags().StringVar(&dupStyle, "style", "",
		"Paragraph style marking answers (default HEADING_6)")
	duplicateCmd.Flags().StringVar(&dupRole, "role", "",
		"Permission role for recipients: reader, commenter or writer")
	duplicateCmd.Flags().BoolVarP(&dupNoEmail, "no-email", "N", false,
		"Share silently, without the notification email")
	duplicateCmd.Flags().StringVarP(&dupMessage, "message", "e", "",
		"Custom notification email body")
	duplicateCmd.Flags().StringVar(&dupLayout, "layout", "",
		"Roster layout: auto, groups or individuals")
	duplicateCmd.Flags().IntVar(&dupGroupColumn, "group-column", 0,
		"1-based roster column holding the group name (individual rows)")

	rootCmd.AddCommand(duplicateCmd)
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	sourceRef, rosterRef := args[0], args[1]

	sourceID, err := domain.ExtractFileID(sourceRef)
	if err != nil {
		return fmt.Errorf("source %q: %w", sourceRef, err)
	}

	layout, ok := domain.ParseLayout(dupLayout)
	if !ok {
		return fmt.Errorf("%w: unknown layout %q", domain.ErrInvalidInput, dupLayout)
	}

	req, err := buildDuplicateRequest(sourceID)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := connect(ctx); err != nil {
		return err
	}

	roster, warnings, err := rosterLoader.Load(ctx, rosterRef, layout, groupColumnIndex())
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	for _, w := range warnings {
		cmd.PrintErrf("warning: roster row %d: %s\n", w.Row, w.Reason)
	}

	cmd.Printf("Duplicating for %d groups (%d recipients)...\n",
		len(roster), roster.RecipientCount())

	summary, err := duplicator.Run(ctx, req, roster)
	if err != nil {
		return fmt.Errorf("duplicate failed: %w", err)
	}

	printSummary(cmd, summary)

	if !summary.Succeeded() {
		return errors.New("run finished with failures")
	}
	return nil
}

// buildDuplicateRequest merges flags with config defaults. Flags win.
func buildDuplicateRequest(sourceID string) (domain.DuplicateRequest, error) {
	role := dupRole
	if role == "" {
		role = configStore.GetString(file.KeyShareRole)
	}
	if role == "" {
		role = domain.RoleReader
	}
	if !domain.ValidRole(role) {
		return domain.DuplicateRequest{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	notify := true
	if v, ok := configStore.Get(file.KeyShareNotify); ok {
		if b, isBool := v.(bool); isBool {
			notify = b
		}
	}
	if dupNoEmail {
		notify = false
	}

	message := dupMessage
	if message == "" {
		message = configStore.GetString(file.KeyShareMessage)
	}
	style := dupStyle
	if style == "" {
		style = configStore.GetString(file.KeyStripStyle)
	}
	replacement := dupReplace
	if replacement == "" {
		replacement = configStore.GetString(file.KeyStripReplacement)
	}

	return domain.DuplicateRequest{
		SourceID:     sourceID,
		Dest:         dupDest,
		MakeDirs:     dupMakeDirs,
		NameTemplate: dupName,
		Strip:        dupStrip,
		AnswerStyle:  style,
		Replacement:  replacement,
		Role:         role,
		Notify:       notify,
		Message:      message,
	}, nil
}

// groupColumnIndex converts the 1-based flag (with config fallback) to the
// 0-based index the roster parser uses.
func groupColumnIndex() int {
	col := dupGroupColumn
	if col == 0 {
		col = configStore.GetInt(file.KeyRosterGroupColumn)
	}
	if col <= 0 {
		return services.NoGroupColumn
	}
	return col - 1
}

func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	for i := range summary.Results {
		r := &summary.Results[i]
		switch r.Outcome {
		case domain.OutcomeDone:
			cmd.Printf("  %s: created %q, shared with %d recipients\n",
				r.Group, r.FileName, len(r.Shares))
		case domain.OutcomeSkipped:
			cmd.Printf("  %s: %q already exists, skipped\n", r.Group, r.FileName)
		case domain.OutcomeFailed:
			cmd.Printf("  %s: failed: %v\n", r.Group, r.Err)
		}
		for _, s := range r.ShareFailures() {
			cmd.Printf("    share with %s failed: %v\n", s.Email, s.Err)
		}
	}

	done, skipped, failed := summary.Counts()
	cmd.Printf("Done: %d  Skipped: %d  Failed: %d\n", done, skipped, failed)
}
