package services

import (
	"context"
	"fmt"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driving"
	"github.com/classkit-labs/handout-cli/internal/logger"
)

// Ensure CopyTreeService implements the interface.
var _ driving.TreeCopier = (*CopyTreeService)(nil)

// CopyTreeService copies a Drive folder recursively. Folders are created
// lazily, only once a file actually lands in them, so empty source folders
// produce no clutter at the destination.
type CopyTreeService struct {
	files driven.FileManager
}

// NewCopyTreeService creates a recursive folder copier.
func NewCopyTreeService(files driven.FileManager) *CopyTreeService {
	return &CopyTreeService{files: files}
}

// treeEntry is one level of the folder stack during recursion. ID stays
// empty until the destination folder is actually created.
type treeEntry struct {
	srcID string
	name  string
	id    string
}

type treeState struct {
	req    *domain.CopyTreeRequest
	destID string
	stack  []treeEntry
	topID  string
}

// Run copies the folder tree described by the request.
func (s *CopyTreeService) Run(ctx context.Context, req domain.CopyTreeRequest) (string, error) {
	src, err := s.files.Stat(ctx, req.SourceID)
	if err != nil {
		return "", fmt.Errorf("source folder %s: %w", req.SourceID, err)
	}
	if !src.IsFolder() {
		return "", fmt.Errorf("%s (%s): %w", src.Name, src.ID, domain.ErrNotAFolder)
	}

	name := req.Name
	if name == "" {
		name = src.Name
	}

	parent := "root"
	if len(src.Parents) > 0 {
		parent = src.Parents[0]
	}
	destID, err := s.files.ResolveFolder(ctx, req.Dest, req.MakeDirs, parent)
	if err != nil {
		return "", fmt.Errorf("destination %q: %w", req.Dest, err)
	}

	if req.Conflicts == domain.ConflictNever {
		existing, err := s.files.FindFile(ctx, name, destID, domain.MimeTypeFolder)
		if err != nil {
			return "", fmt.Errorf("check destination: %w", err)
		}
		if existing != "" {
			return "", fmt.Errorf("folder %q in destination: %w", name, domain.ErrAlreadyExists)
		}
	}

	logger.Info("copying folder %q (%s) to %q", src.Name, src.ID, name)
	st := &treeState{req: &req, destID: destID}
	if err := s.copyFolder(ctx, src.ID, name, st); err != nil {
		return "", err
	}
	return st.topID, nil
}

func (s *CopyTreeService) copyFolder(ctx context.Context, srcID, name string, st *treeState) error {
	st.stack = append(st.stack, treeEntry{srcID: srcID, name: name})

	children, err := s.files.ListChildren(ctx, srcID)
	if err != nil {
		return fmt.Errorf("list folder %s: %w", srcID, err)
	}

	for i := range children {
		child := &children[i]
		switch {
		case child.IsFolder():
			if err := s.copyFolder(ctx, child.ID, child.Name, st); err != nil {
				return err
			}
		case child.IsShortcut():
			if err := s.copyShortcut(ctx, child, st); err != nil {
				return err
			}
		default:
			if err := s.copyFile(ctx, child, st); err != nil {
				return err
			}
		}
	}

	st.stack = st.stack[:len(st.stack)-1]
	return nil
}

// copyShortcut handles a shortcut child according to the shortcut mode.
// Followed folder shortcuts check the stack first so a shortcut pointing
// back up the tree cannot recurse forever.
func (s *CopyTreeService) copyShortcut(ctx context.Context, file *domain.FileInfo, st *treeState) error {
	isDir := file.ShortcutTargetMime == domain.MimeTypeFolder

	if isDir && st.req.Shortcuts.FollowsFolders() {
		for _, entry := range st.stack {
			if entry.srcID == file.ShortcutTarget {
				logger.Warn("shortcut %q points back into the tree, copying as-is", file.Name)
				return s.copyFile(ctx, file, st)
			}
		}
		return s.copyFolder(ctx, file.ShortcutTarget, file.Name, st)
	}
	if !isDir && st.req.Shortcuts.FollowsFiles() {
		target := domain.FileInfo{
			ID:       file.ShortcutTarget,
			Name:     file.Name,
			MimeType: file.ShortcutTargetMime,
		}
		return s.copyFile(ctx, &target, st)
	}
	return s.copyFile(ctx, file, st)
}

func (s *CopyTreeService) copyFile(ctx context.Context, file *domain.FileInfo, st *treeState) error {
	destID, err := s.ensureDirs(ctx, st)
	if err != nil {
		return err
	}

	name := file.Name
	if st.req.Conflicts != domain.ConflictNever {
		existing, err := s.files.FindFile(ctx, name, destID, file.MimeType)
		if err != nil {
			return fmt.Errorf("check conflict for %q: %w", name, err)
		}
		if existing != "" {
			switch st.req.Conflicts {
			case domain.ConflictSkip:
				logger.Debug("skipping %q (already exists)", name)
				return nil
			case domain.ConflictOverwrite:
				logger.Debug("overwriting %q", name)
				if err := s.files.Delete(ctx, existing); err != nil {
					return fmt.Errorf("overwrite %q: %w", name, err)
				}
			case domain.ConflictKeepBoth:
				name, err = s.availableName(ctx, name, destID, file.MimeType)
				if err != nil {
					return err
				}
				logger.Debug("keeping both, copying %q as %q", file.Name, name)
			}
		}
	}

	if file.IsShortcut() {
		_, err = s.files.CopyShortcut(ctx, file, name, destID)
	} else {
		_, err = s.files.Copy(ctx, file.ID, name, destID)
	}
	if err != nil {
		return fmt.Errorf("copy %q: %w", name, err)
	}
	return nil
}

// ensureDirs creates any not-yet-created folders on the stack and returns
// the ID of the innermost one. When conflicts are allowed, an existing
// folder with the same name is merged into instead of duplicated.
func (s *CopyTreeService) ensureDirs(ctx context.Context, st *treeState) (string, error) {
	destID := st.destID
	for i := range st.stack {
		entry := &st.stack[i]
		if entry.id == "" {
			if st.req.Conflicts != domain.ConflictNever {
				existing, err := s.files.FindFile(ctx, entry.name, destID, domain.MimeTypeFolder)
				if err != nil {
					return "", fmt.Errorf("check folder %q: %w", entry.name, err)
				}
				if existing != "" {
					logger.Debug("merging into existing folder %q", entry.name)
					entry.id = existing
				}
			}
			if entry.id == "" {
				id, err := s.files.CreateFolder(ctx, entry.name, destID)
				if err != nil {
					return "", fmt.Errorf("create folder %q: %w", entry.name, err)
				}
				logger.Debug("created folder %q", entry.name)
				entry.id = id
			}
			if i == 0 {
				st.topID = entry.id
			}
		}
		destID = entry.id
	}
	return destID, nil
}

// availableName finds the first unused "name (N)" variant.
func (s *CopyTreeService) availableName(
	ctx context.Context, name, destID, mimeType string,
) (string, error) {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		existing, err := s.files.FindFile(ctx, candidate, destID, mimeType)
		if err != nil {
			return "", fmt.Errorf("check name %q: %w", candidate, err)
		}
		if existing == "" {
			return candidate, nil
		}
	}
}
