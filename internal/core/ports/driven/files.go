package driven

import (
	"context"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

// FileManager is the Drive surface the core services depend on.
// All files are opaque handles identified by string IDs. Implementations
// resolve shortcuts where noted and translate API errors into wrapped,
// classifiable errors.
type FileManager interface {
	// Stat returns metadata for a file, resolving shortcuts to their target.
	Stat(ctx context.Context, fileID string) (*domain.FileInfo, error)

	// FindFile returns the ID of a non-trashed file with the given name in
	// the parent folder, optionally restricted by MIME type. Returns
	// ("", nil) when no such file exists.
	FindFile(ctx context.Context, name, parentID, mimeType string) (string, error)

	// ResolveFolder turns a folder reference (an ID, or a /-separated path
	// with "." and ".." segments relative to parentID) into a folder ID,
	// creating missing path segments when makeDirs is true.
	ResolveFolder(ctx context.Context, ref string, makeDirs bool, parentID string) (string, error)

	// CreateFolder creates a folder and returns its ID.
	CreateFolder(ctx context.Context, name, parentID string) (string, error)

	// ListChildren lists the non-trashed children of a folder.
	ListChildren(ctx context.Context, folderID string) ([]domain.FileInfo, error)

	// Copy duplicates a file under the given name and, when destID is
	// non-empty, moves the copy into that folder. Returns the new file ID.
	Copy(ctx context.Context, fileID, name, destID string) (string, error)

	// CopyShortcut creates a new shortcut to the same target.
	CopyShortcut(ctx context.Context, file *domain.FileInfo, name, destID string) (string, error)

	// Delete permanently removes a file.
	Delete(ctx context.Context, fileID string) error

	// Share grants one user access to a file.
	Share(ctx context.Context, fileID string, p domain.Permission) error

	// Download fetches a file's raw content (used for CSV rosters stored
	// in Drive).
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// RosterSource retrieves tabular roster data from a remote spreadsheet.
type RosterSource interface {
	// ReadRows returns the rows of the spreadsheet's first tab as strings.
	ReadRows(ctx context.Context, spreadsheetID string) ([][]string, error)
}
