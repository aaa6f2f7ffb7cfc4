// Package memory provides in-memory implementations of the driven ports.
// They back the service tests and behave like a tiny Drive: files live in
// folders, shortcuts resolve, copies get fresh IDs.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
)

// Ensure Drive implements the interface.
var _ driven.FileManager = (*Drive)(nil)

// File is a stored in-memory file.
type File struct {
	ID                 string
	Name               string
	MimeType           string
	Parents            []string
	ShortcutTarget     string
	ShortcutTargetMime string
	Content            []byte
	Permissions        []domain.Permission
}

// Drive is an in-memory FileManager. Error hooks allow tests to inject
// failures for specific files or recipients.
type Drive struct {
	mu     sync.Mutex
	files  map[string]*File
	nextID int

	// CopyErr, when set, is consulted before every copy.
	CopyErr func(fileID, name string) error
	// ShareErr, when set, is consulted before every share.
	ShareErr func(fileID, email string) error
}

// NewDrive creates an empty in-memory Drive with a "root" folder.
func NewDrive() *Drive {
	d := &Drive{files: map[string]*File{}}
	d.files["root"] = &File{ID: "root", Name: "My Drive", MimeType: domain.MimeTypeFolder}
	return d
}

// AddFile stores a file, assigning an ID if none is set, and returns the ID.
func (d *Drive) AddFile(f File) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if f.ID == "" {
		f.ID = d.newID()
	}
	if len(f.Parents) == 0 && !strings.HasPrefix(f.ID, "root") {
		f.Parents = []string{"root"}
	}
	stored := f
	d.files[f.ID] = &stored
	return f.ID
}

// Get returns a stored file for assertions.
func (d *Drive) Get(id string) *File {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.files[id]
}

// FilesNamed returns the IDs of files with the given name, for assertions.
func (d *Drive) FilesNamed(name string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var ids []string
	for id, f := range d.files {
		if f.Name == name {
			ids = append(ids, id)
		}
	}
	return ids
}

func (d *Drive) newID() string {
	d.nextID++
	return fmt.Sprintf("file-%03d", d.nextID)
}

// Stat implements driven.FileManager, resolving shortcuts to their target.
func (d *Drive) Stat(_ context.Context, fileID string) (*domain.FileInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	if f.MimeType == domain.MimeTypeShortcut && f.ShortcutTarget != "" {
		target, ok := d.files[f.ShortcutTarget]
		if !ok {
			return nil, fmt.Errorf("shortcut target %s: %w", f.ShortcutTarget, domain.ErrNotFound)
		}
		f = target
	}
	return fileInfo(f), nil
}

// FindFile implements driven.FileManager.
func (d *Drive) FindFile(_ context.Context, name, parentID, mimeType string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, f := range d.files {
		if f.Name != name || !hasParent(f, parentID) {
			continue
		}
		if mimeType != "" && f.MimeType != mimeType {
			continue
		}
		return id, nil
	}
	return "", nil
}

// ResolveFolder implements driven.FileManager. A ref matching an existing
// folder ID wins; otherwise the ref is walked as a /-separated path.
func (d *Drive) ResolveFolder(
	ctx context.Context, ref string, makeDirs bool, parentID string,
) (string, error) {
	d.mu.Lock()
	if f, ok := d.files[ref]; ok && f.MimeType == domain.MimeTypeFolder {
		d.mu.Unlock()
		return ref, nil
	}
	d.mu.Unlock()

	current := parentID
	if strings.HasPrefix(ref, "/") {
		current = "root"
	}
	for _, part := range strings.Split(strings.Trim(ref, "/"), "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			d.mu.Lock()
			f, ok := d.files[current]
			if !ok {
				d.mu.Unlock()
				return "", fmt.Errorf("parent of %s: %w", current, domain.ErrNotFound)
			}
			if len(f.Parents) == 0 {
				current = "root"
			} else {
				current = f.Parents[0]
			}
			d.mu.Unlock()
		default:
			id := d.findFolder(part, current)
			if id == "" {
				if !makeDirs {
					return "", fmt.Errorf("folder %q: %w", part, domain.ErrNotFound)
				}
				var err error
				id, err = d.CreateFolder(ctx, part, current)
				if err != nil {
					return "", err
				}
			}
			current = id
		}
	}
	return current, nil
}

// findFolder matches a child folder by name, following shortcuts whose
// target is a folder.
func (d *Drive) findFolder(name, parentID string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, f := range d.files {
		if f.Name != name || !hasParent(f, parentID) {
			continue
		}
		if f.MimeType == domain.MimeTypeFolder {
			return id
		}
		if f.MimeType == domain.MimeTypeShortcut && f.ShortcutTargetMime == domain.MimeTypeFolder {
			return f.ShortcutTarget
		}
	}
	return ""
}

// CreateFolder implements driven.FileManager.
func (d *Drive) CreateFolder(_ context.Context, name, parentID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.newID()
	d.files[id] = &File{
		ID:       id,
		Name:     name,
		MimeType: domain.MimeTypeFolder,
		Parents:  []string{parentID},
	}
	return id, nil
}

// ListChildren implements driven.FileManager.
func (d *Drive) ListChildren(_ context.Context, folderID string) ([]domain.FileInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var children []domain.FileInfo
	for _, f := range d.files {
		if hasParent(f, folderID) {
			children = append(children, *fileInfo(f))
		}
	}
	return children, nil
}

// Copy implements driven.FileManager.
func (d *Drive) Copy(_ context.Context, fileID, name, destID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.CopyErr != nil {
		if err := d.CopyErr(fileID, name); err != nil {
			return "", err
		}
	}
	src, ok := d.files[fileID]
	if !ok {
		return "", fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	id := d.newID()
	parents := src.Parents
	if destID != "" {
		parents = []string{destID}
	}
	d.files[id] = &File{
		ID:       id,
		Name:     name,
		MimeType: src.MimeType,
		Parents:  parents,
		Content:  append([]byte(nil), src.Content...),
	}
	return id, nil
}

// CopyShortcut implements driven.FileManager.
func (d *Drive) CopyShortcut(
	_ context.Context, file *domain.FileInfo, name, destID string,
) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.newID()
	d.files[id] = &File{
		ID:                 id,
		Name:               name,
		MimeType:           domain.MimeTypeShortcut,
		Parents:            []string{destID},
		ShortcutTarget:     file.ShortcutTarget,
		ShortcutTargetMime: file.ShortcutTargetMime,
	}
	return id, nil
}

// Delete implements driven.FileManager.
func (d *Drive) Delete(_ context.Context, fileID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.files[fileID]; !ok {
		return fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	delete(d.files, fileID)
	return nil
}

// Share implements driven.FileManager.
func (d *Drive) Share(_ context.Context, fileID string, p domain.Permission) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ShareErr != nil {
		if err := d.ShareErr(fileID, p.Email); err != nil {
			return err
		}
	}
	f, ok := d.files[fileID]
	if !ok {
		return fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	f.Permissions = append(f.Permissions, p)
	return nil
}

// Download implements driven.FileManager.
func (d *Drive) Download(_ context.Context, fileID string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	return append([]byte(nil), f.Content...), nil
}

func fileInfo(f *File) *domain.FileInfo {
	return &domain.FileInfo{
		ID:                 f.ID,
		Name:               f.Name,
		MimeType:           f.MimeType,
		Parents:            append([]string(nil), f.Parents...),
		ShortcutTarget:     f.ShortcutTarget,
		ShortcutTargetMime: f.ShortcutTargetMime,
	}
}

func hasParent(f *File, parentID string) bool {
	for _, p := range f.Parents {
		if p == parentID {
			return true
		}
	}
	return false
}
