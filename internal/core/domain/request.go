package domain

import "strings"

// NamePlaceholder is the substitution marker in name templates.
const NamePlaceholder = "{}"

// DefaultAnswerStyle is the Docs named paragraph style that marks
// answer paragraphs for stripping.
const DefaultAnswerStyle = "HEADING_6"

// DuplicateRequest holds one run's duplication parameters. It is
// constructed once from CLI and config input and read-only thereafter.
type DuplicateRequest struct {
	// SourceID is the resolved Drive file ID to duplicate.
	SourceID string

	// Dest is the destination folder: a folder ID or a Drive path
	// relative to the source's parent. Empty means the source's parent.
	Dest string

	// MakeDirs creates missing destination path segments.
	MakeDirs bool

	// NameTemplate names each copy; NamePlaceholder is replaced with the
	// group name. Empty means "<source name> - {}".
	NameTemplate string

	// Strip removes answer paragraphs from each Google Doc copy.
	Strip bool

	// AnswerStyle is the named paragraph style marking answers.
	// Empty means DefaultAnswerStyle.
	AnswerStyle string

	// Replacement optionally replaces stripped answer text.
	Replacement string

	// Role is the permission role granted to recipients.
	Role string

	// Notify sends share notification emails.
	Notify bool

	// Message is an optional custom notification body.
	Message string
}

// FileName renders the template for a group, following the original
// tool's convention: a template without a placeholder has " - {}"
// appended, and no template at all falls back to the source name.
func (r *DuplicateRequest) FileName(sourceName, group string) string {
	tmpl := r.NameTemplate
	if tmpl == "" {
		tmpl = sourceName
	}
	if !strings.Contains(tmpl, NamePlaceholder) {
		tmpl += " - " + NamePlaceholder
	}
	return strings.ReplaceAll(tmpl, NamePlaceholder, group)
}

// StripStyle returns the configured answer style or the default.
func (r *DuplicateRequest) StripStyle() string {
	if r.AnswerStyle == "" {
		return DefaultAnswerStyle
	}
	return r.AnswerStyle
}

// ConflictMode controls what happens when a copied file's name already
// exists at the destination.
type ConflictMode string

const (
	// ConflictNever aborts before copying anything if the destination
	// folder already exists.
	ConflictNever ConflictMode = "never"
	// ConflictSkip keeps the existing file and skips the copy.
	ConflictSkip ConflictMode = "skip"
	// ConflictOverwrite deletes the existing file first.
	ConflictOverwrite ConflictMode = "overwrite"
	// ConflictKeepBoth keeps both by appending " (N)" to the new name.
	ConflictKeepBoth ConflictMode = "both"
)

// ParseConflictMode converts a CLI flag value into a ConflictMode.
func ParseConflictMode(s string) (ConflictMode, bool) {
	switch ConflictMode(strings.ToLower(strings.TrimSpace(s))) {
	case ConflictNever, ConflictMode(""):
		return ConflictNever, true
	case ConflictSkip:
		return ConflictSkip, true
	case ConflictOverwrite:
		return ConflictOverwrite, true
	case ConflictKeepBoth:
		return ConflictKeepBoth, true
	default:
		return "", false
	}
}

// ShortcutMode controls how Drive shortcuts are copied.
type ShortcutMode int

const (
	// ShortcutAsIs copies the shortcut object itself.
	ShortcutAsIs ShortcutMode = iota
	// ShortcutFollowFolders recurses into folder shortcuts.
	ShortcutFollowFolders
	// ShortcutFollowFiles copies the target of file shortcuts.
	ShortcutFollowFiles
	// ShortcutFollow follows both folder and file shortcuts.
	ShortcutFollow
)

// FollowsFolders reports whether folder shortcuts are recursed into.
func (m ShortcutMode) FollowsFolders() bool {
	return m == ShortcutFollowFolders || m == ShortcutFollow
}

// FollowsFiles reports whether file shortcut targets are copied.
func (m ShortcutMode) FollowsFiles() bool {
	return m == ShortcutFollowFiles || m == ShortcutFollow
}

// CopyTreeRequest holds one recursive folder copy's parameters.
type CopyTreeRequest struct {
	// SourceID is the resolved Drive folder ID to copy.
	SourceID string

	// Dest is the destination folder: an ID or a Drive path relative to
	// the source folder's parent.
	Dest string

	// Name is the copied folder's name. Empty means the source's name.
	Name string

	// MakeDirs creates missing destination path segments.
	MakeDirs bool

	// Conflicts selects the conflict handling mode.
	Conflicts ConflictMode

	// Shortcuts selects the shortcut handling mode.
	Shortcuts ShortcutMode
}
