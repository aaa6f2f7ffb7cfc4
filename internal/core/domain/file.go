package domain

// Google Workspace MIME types the orchestrator needs to recognise.
// Duplicating works for any Drive file; answer stripping only applies
// to Google Docs.
const (
	MimeTypeGoogleDoc   = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	MimeTypeFolder      = "application/vnd.google-apps.folder"
	MimeTypeShortcut    = "application/vnd.google-apps.shortcut"
	MimeTypeCSV         = "text/csv"
)

// FileInfo is the subset of Drive file metadata the core operates on.
// Files are opaque handles identified by string IDs; no in-process
// identity or caching is assumed beyond a single run.
type FileInfo struct {
	// ID is the Drive file ID.
	ID string

	// Name is the file's display name.
	Name string

	// MimeType is the Drive MIME type.
	MimeType string

	// Parents are the parent folder IDs (usually exactly one).
	Parents []string

	// ShortcutTarget is the target file ID when MimeType is a shortcut.
	ShortcutTarget string

	// ShortcutTargetMime is the target's MIME type when MimeType is a shortcut.
	ShortcutTargetMime string
}

// IsFolder reports whether the file is a Drive folder.
func (f *FileInfo) IsFolder() bool { return f.MimeType == MimeTypeFolder }

// IsShortcut reports whether the file is a Drive shortcut.
func (f *FileInfo) IsShortcut() bool { return f.MimeType == MimeTypeShortcut }

// IsGoogleDoc reports whether the file is a Google Doc (strippable).
func (f *FileInfo) IsGoogleDoc() bool { return f.MimeType == MimeTypeGoogleDoc }

// Permission roles accepted by the Drive permissions API.
const (
	RoleReader    = "reader"
	RoleCommenter = "commenter"
	RoleWriter    = "writer"
)

// ValidRole reports whether role is one of the supported Drive roles.
func ValidRole(role string) bool {
	switch role {
	case RoleReader, RoleCommenter, RoleWriter:
		return true
	default:
		return false
	}
}

// Permission describes a single user grant on a file.
type Permission struct {
	// Email is the recipient address.
	Email string

	// Role is one of the Role* constants.
	Role string

	// Notify sends the Drive share notification email when true.
	Notify bool

	// Message is an optional custom body for the notification email.
	// Ignored when Notify is false.
	Message string
}
