package services

import (
	"context"
	"fmt"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driving"
	"github.com/classkit-labs/handout-cli/internal/logger"
)

// Ensure DuplicateService implements the interface.
var _ driving.Duplicator = (*DuplicateService)(nil)

// DuplicateService runs the duplicate-and-share workflow. Groups are
// processed one at a time, in roster order, so that API rate limits are
// respected and every error attributes to exactly one group.
type DuplicateService struct {
	files  driven.FileManager
	editor driven.DocumentEditor

	// Progress, when set, is called with each group's result as it
	// completes. The CLI uses it for per-group output.
	Progress func(domain.GroupResult)
}

// NewDuplicateService creates a duplicate-and-share service. The editor
// may be nil when stripping is never requested.
func NewDuplicateService(files driven.FileManager, editor driven.DocumentEditor) *DuplicateService {
	return &DuplicateService{
		files:  files,
		editor: editor,
	}
}

// Run executes the workflow. The source and destination are resolved once
// and shared across groups; a failure there is fatal. Per-group failures
// are recorded in the summary and the batch continues (best effort).
func (s *DuplicateService) Run(
	ctx context.Context, req domain.DuplicateRequest, roster domain.Roster,
) (*domain.RunSummary, error) {
	if len(roster) == 0 {
		return nil, domain.ErrEmptyRoster
	}

	source, err := s.files.Stat(ctx, req.SourceID)
	if err != nil {
		return nil, fmt.Errorf("source file %s: %w", req.SourceID, err)
	}
	logger.Info("duplicating %q (%s)", source.Name, source.ID)

	destID, err := s.resolveDest(ctx, &req, source)
	if err != nil {
		return nil, err
	}

	summary := &domain.RunSummary{}
	for _, group := range roster {
		result := s.processGroup(ctx, &req, source, destID, group)
		summary.Add(result)
		if s.Progress != nil {
			s.Progress(result)
		}
	}
	return summary, nil
}

// resolveDest turns the request's destination into a folder ID. The
// default is the source's own parent folder.
func (s *DuplicateService) resolveDest(
	ctx context.Context, req *domain.DuplicateRequest, source *domain.FileInfo,
) (string, error) {
	parent := "root"
	if len(source.Parents) > 0 {
		parent = source.Parents[0]
	}
	if req.Dest == "" {
		return parent, nil
	}

	destID, err := s.files.ResolveFolder(ctx, req.Dest, req.MakeDirs, parent)
	if err != nil {
		return "", fmt.Errorf("destination %q: %w", req.Dest, err)
	}
	return destID, nil
}

func (s *DuplicateService) processGroup(
	ctx context.Context,
	req *domain.DuplicateRequest,
	source *domain.FileInfo,
	destID string,
	group domain.Group,
) domain.GroupResult {
	result := domain.GroupResult{
		Group:    group.Name,
		FileName: req.FileName(source.Name, group.Name),
	}

	// A file with the target name means the group was handled by an
	// earlier run; re-running the whole roster stays safe.
	existing, err := s.files.FindFile(ctx, result.FileName, destID, source.MimeType)
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("check for existing copy: %w", err)
		return result
	}
	if existing != "" {
		logger.Info("group %q: %q already exists, skipping", group.Name, result.FileName)
		result.Outcome = domain.OutcomeSkipped
		result.FileID = existing
		return result
	}

	// source.ID, not the requested ID: a shortcut source resolves to its
	// target, and the target is what gets duplicated.
	copyID, err := s.files.Copy(ctx, source.ID, result.FileName, destID)
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("copy: %w", err)
		return result
	}
	result.FileID = copyID
	logger.Debug("group %q: created %s", group.Name, copyID)

	// Stripping only applies to Google Docs; other kinds pass through
	// unchanged. A copy that still contains answers is never shared, so a
	// strip failure fails the group and removes the copy.
	if req.Strip && source.IsGoogleDoc() {
		stripped, err := s.editor.StripAnswers(ctx, copyID, req.StripStyle(), req.Replacement)
		if err != nil {
			if delErr := s.files.Delete(ctx, copyID); delErr != nil {
				logger.Warn("group %q: could not remove unstripped copy %s: %v",
					group.Name, copyID, delErr)
			}
			result.Outcome = domain.OutcomeFailed
			result.FileID = ""
			result.Err = fmt.Errorf("strip answers: %w", err)
			return result
		}
		logger.Debug("group %q: stripped %d answer paragraphs", group.Name, stripped)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleReader
	}
	for _, email := range group.Emails {
		shareErr := s.files.Share(ctx, copyID, domain.Permission{
			Email:   email,
			Role:    role,
			Notify:  req.Notify,
			Message: req.Message,
		})
		if shareErr != nil {
			logger.Warn("group %q: share with %s failed: %v", group.Name, email, shareErr)
			shareErr = fmt.Errorf("share with %s: %w", email, shareErr)
		}
		result.Shares = append(result.Shares, domain.ShareStatus{Email: email, Err: shareErr})
	}

	result.Outcome = domain.OutcomeDone
	return result
}
