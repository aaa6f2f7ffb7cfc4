package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/classkit-labs/handout-cli/internal/adapters/driven/auth"
	"github.com/classkit-labs/handout-cli/internal/adapters/driven/config/file"
	"github.com/classkit-labs/handout-cli/internal/connectors/google"
	gdocs "github.com/classkit-labs/handout-cli/internal/connectors/google/docs"
	gdrive "github.com/classkit-labs/handout-cli/internal/connectors/google/drive"
	gsheets "github.com/classkit-labs/handout-cli/internal/connectors/google/sheets"
	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driving"
	"github.com/classkit-labs/handout-cli/internal/core/services"
	"github.com/classkit-labs/handout-cli/internal/logger"
)

// Services driving Drive, Docs and Sheets. Built lazily by connect();
// tests inject fakes directly.
var (
	duplicator   driving.Duplicator
	treeCopier   driving.TreeCopier
	rosterLoader driving.RosterLoader
)

// connect wires the Google-backed services on first use. It needs a cached
// OAuth token, so every command that calls it fails with a pointer to
// 'handout auth login' until the user has signed in.
func connect(ctx context.Context) error {
	if duplicator != nil && treeCopier != nil && rosterLoader != nil {
		return nil
	}

	dir, err := configDir()
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	store := auth.NewTokenStore(dir)
	token, err := store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) || errors.Is(err, domain.ErrTokenInvalid) {
			return fmt.Errorf("not signed in, run 'handout auth login' first (%w)", err)
		}
		return err
	}

	credPath, err := file.FindCredentials(dir)
	if err != nil {
		return fmt.Errorf("locate OAuth client secret: %w", err)
	}
	cfg, err := file.LoadOAuthConfig(credPath, google.Scopes)
	if err != nil {
		return err
	}
	ts := auth.NewTokenSource(ctx, cfg, store, token)

	driveSvc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return fmt.Errorf("create drive client: %w", err)
	}
	docsSvc, err := google.NewDocsService(ctx, ts)
	if err != nil {
		return fmt.Errorf("create docs client: %w", err)
	}
	sheetsSvc, err := google.NewSheetsService(ctx, ts)
	if err != nil {
		return fmt.Errorf("create sheets client: %w", err)
	}

	files := gdrive.NewClient(driveSvc)
	editor := gdocs.NewEditor(docsSvc)
	sheetSource := gsheets.NewSource(sheetsSvc)

	dup := services.NewDuplicateService(files, editor)
	dup.Progress = func(r domain.GroupResult) {
		logger.Debug("group %q: %s", r.Group, r.Outcome)
	}

	duplicator = dup
	treeCopier = services.NewCopyTreeService(files)
	rosterLoader = services.NewRosterService(files, sheetSource)
	return nil
}
