package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

var (
	treeMakeDirs      bool
	treeConflict      string
	treeFollowAll     bool
	treeFollowFiles   bool
	treeFollowFolders bool
)

var copytreeCmd = &cobra.Command{
	Use:   "copytree <folder> <dest> [name]",
	Short: "Copy a Drive folder tree recursively",
	Long: `Copy a Drive folder and everything under it into another folder.

<folder> and <dest> are folder IDs, share URLs, or Drive paths. The copy
keeps the source's name unless [name] is given. Folders are created
lazily, so empty source folders do not appear in the copy.

Shortcuts are copied as shortcuts unless a --follow flag asks for their
targets; a folder shortcut pointing back into the tree is copied as a
shortcut instead of recursing forever.

Examples:
  handout copytree 1AbC...xYz "term 3/archive" -p
  handout copytree 1AbC...xYz 1DeF...uVw "worksheets backup" --conflict both`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCopyTree,
}

func init() {
	copytreeCmd.Flags().BoolVarP(&treeMakeDirs, "make-dirs", "p", false,
		"Create missing destination path segments")
	copytreeCmd.Flags().StringVar(&treeConflict, "conflict", "never",
		"Name conflict handling: never, skip, overwrite or both")
	copytreeCmd.Flags().BoolVar(&treeFollowAll, "follow-shortcuts", false,
		"Copy the targets of all shortcuts")
	copytreeCmd.Flags().BoolVar(&treeFollowFiles, "follow-file-shortcuts", false,
		"Copy the targets of file shortcuts")
	copytreeCmd.Flags().BoolVar(&treeFollowFolders, "follow-folder-shortcuts", false,
		"Recurse into folder shortcuts")

	rootCmd.AddCommand(copytreeCmd)
}

func runCopyTree(cmd *cobra.Command, args []string) error {
	sourceID, err := domain.ExtractFileID(args[0])
	if err != nil {
		return fmt.Errorf("folder %q: %w", args[0], err)
	}

	conflicts, ok := domain.ParseConflictMode(treeConflict)
	if !ok {
		return fmt.Errorf("%w: unknown conflict mode %q", domain.ErrInvalidInput, treeConflict)
	}

	req := domain.CopyTreeRequest{
		SourceID:  sourceID,
		Dest:      args[1],
		MakeDirs:  treeMakeDirs,
		Conflicts: conflicts,
		Shortcuts: shortcutMode(),
	}
	if len(args) == 3 {
		req.Name = args[2]
	}

	ctx := cmd.Context()
	if err := connect(ctx); err != nil {
		return err
	}

	folderID, err := treeCopier.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}

	if folderID == "" {
		cmd.Println("Nothing to copy.")
		return nil
	}
	cmd.Printf("Copied folder tree: %s\n", folderID)
	return nil
}

func shortcutMode() domain.ShortcutMode {
	folders := treeFollowAll || treeFollowFolders
	files := treeFollowAll || treeFollowFiles
	switch {
	case folders && files:
		return domain.ShortcutFollow
	case folders:
		return domain.ShortcutFollowFolders
	case files:
		return domain.ShortcutFollowFiles
	default:
		return domain.ShortcutAsIs
	}
}
