package memory

import (
	"context"
	"sync"

	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
)

// Ensure Editor implements the interface.
var _ driven.DocumentEditor = (*Editor)(nil)

// StripCall records one StripAnswers invocation.
type StripCall struct {
	DocID       string
	Style       string
	Replacement string
}

// Editor is an in-memory DocumentEditor that records strip calls.
type Editor struct {
	mu    sync.Mutex
	calls []StripCall

	// Stripped is the paragraph count reported per call.
	Stripped int
	// Err, when set, fails every call.
	Err error
}

// NewEditor creates a recording editor.
func NewEditor() *Editor {
	return &Editor{Stripped: 1}
}

// StripAnswers implements driven.DocumentEditor.
func (e *Editor) StripAnswers(_ context.Context, docID, style, replacement string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return 0, e.Err
	}
	e.calls = append(e.calls, StripCall{DocID: docID, Style: style, Replacement: replacement})
	return e.Stripped, nil
}

// Calls returns the recorded invocations.
func (e *Editor) Calls() []StripCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]StripCall(nil), e.calls...)
}
