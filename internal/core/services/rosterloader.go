package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driving"
	"github.com/classkit-labs/handout-cli/internal/logger"
)

// Ensure RosterService implements the interface.
var _ driving.RosterLoader = (*RosterService)(nil)

// RosterService loads and parses rosters from a local CSV file, stdin, or
// a Drive-hosted CSV file or Google Sheet.
type RosterService struct {
	files  driven.FileManager
	sheets driven.RosterSource

	// Stdin is the reader used for the "-" roster reference.
	// Defaults to os.Stdin; overridable for tests.
	Stdin io.Reader
}

// NewRosterService creates a roster loader. Both dependencies may be nil
// when only local files are used.
func NewRosterService(files driven.FileManager, sheets driven.RosterSource) *RosterService {
	return &RosterService{
		files:  files,
		sheets: sheets,
		Stdin:  os.Stdin,
	}
}

// Load resolves the roster reference, reads its rows, and folds them into
// groups. The reference may be "-" for stdin, a local file path, or a
// Drive file ID/URL of a CSV file or Google Sheet (first tab).
func (s *RosterService) Load(
	ctx context.Context, ref string, layout domain.Layout, groupColumn int,
) (domain.Roster, []domain.RosterWarning, error) {
	rows, err := s.readRows(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	roster, warnings, err := MakeGroups(rows, layout, groupColumn)
	if err != nil {
		return nil, warnings, fmt.Errorf("parse roster %s: %w", ref, err)
	}

	logger.Debug("roster: %d groups, %d recipients, %d warnings",
		len(roster), roster.RecipientCount(), len(warnings))
	return roster, warnings, nil
}

func (s *RosterService) readRows(ctx context.Context, ref string) ([][]string, error) {
	if ref == "-" {
		return readCSV(s.Stdin)
	}

	if _, err := os.Stat(ref); err == nil {
		f, err := os.Open(ref)
		if err != nil {
			return nil, fmt.Errorf("open roster: %w", err)
		}
		defer f.Close()
		return readCSV(f)
	}

	return s.readRemote(ctx, ref)
}

// readRemote fetches a roster stored in Drive: a Google Sheet is read
// through the Sheets API, a plain CSV file is downloaded directly.
func (s *RosterService) readRemote(ctx context.Context, ref string) ([][]string, error) {
	id, err := domain.ExtractFileID(ref)
	if err != nil {
		return nil, fmt.Errorf("roster %q is neither a file nor a Drive reference: %w", ref, err)
	}
	if s.files == nil {
		return nil, fmt.Errorf("remote roster %s: %w", id, domain.ErrInvalidInput)
	}

	info, err := s.files.Stat(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("stat roster %s: %w", id, err)
	}

	switch info.MimeType {
	case domain.MimeTypeGoogleSheet:
		if s.sheets == nil {
			return nil, fmt.Errorf("roster %s: %w", id, domain.ErrInvalidInput)
		}
		logger.Debug("roster: reading sheet %s (%s)", info.Name, id)
		return s.sheets.ReadRows(ctx, id)
	case domain.MimeTypeCSV:
		logger.Debug("roster: downloading CSV %s (%s)", info.Name, id)
		data, err := s.files.Download(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("download roster %s: %w", id, err)
		}
		return readCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("roster %s has unusable type %s: %w",
			id, info.MimeType, domain.ErrUnsupportedKind)
	}
}

// readCSV parses comma-separated rows, tolerating a BOM and rows of
// varying width (group rows list a different number of emails each).
func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(DecodeBOM(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	return rows, nil
}
