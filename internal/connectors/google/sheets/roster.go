// Package sheets wraps the Google Sheets v4 API behind the roster source
// port. Only read access to the first tab is needed.
package sheets

import (
	"context"
	"fmt"

	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/classkit-labs/handout-cli/internal/connectors/google"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
)

// Source reads roster rows from a Google Sheet.
type Source struct {
	svc     *sheetsv4.Service
	limiter *google.RateLimiter
}

var _ driven.RosterSource = (*Source)(nil)

// NewSource creates a Sheets roster source with the default rate limiter.
func NewSource(svc *sheetsv4.Service) *Source {
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceSheets),
	}
}

// ReadRows returns the rows of the spreadsheet's first tab as strings.
// Numeric cells are stringified the way the sheet displays them.
func (s *Source) ReadRows(ctx context.Context, spreadsheetID string) ([][]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	meta, err := s.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err, "get spreadsheet")
	}
	if len(meta.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}
	tab := meta.Sheets[0].Properties.Title

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	values, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, tab).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err, "read sheet values")
	}

	rows := make([][]string, 0, len(values.Values))
	for _, raw := range values.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
