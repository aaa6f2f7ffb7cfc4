package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
)

// Ensure Sheets implements the interface.
var _ driven.RosterSource = (*Sheets)(nil)

// Sheets is an in-memory RosterSource keyed by spreadsheet ID.
type Sheets struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

// NewSheets creates an empty in-memory sheet source.
func NewSheets() *Sheets {
	return &Sheets{tabs: map[string][][]string{}}
}

// AddSheet stores the first-tab rows for a spreadsheet ID.
func (s *Sheets) AddSheet(id string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs[id] = rows
}

// ReadRows implements driven.RosterSource.
func (s *Sheets) ReadRows(_ context.Context, spreadsheetID string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheetID, domain.ErrNotFound)
	}
	return rows, nil
}
