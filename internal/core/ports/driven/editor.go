package driven

import "context"

// DocumentEditor mutates rich-text documents. Its only operation today is
// answer stripping; the Docs connector implements it.
type DocumentEditor interface {
	// StripAnswers deletes the text of every paragraph whose named style
	// matches style, leaving the paragraph blocks in place. When
	// replacement is non-empty it is inserted where the text was removed.
	// Returns the number of paragraphs stripped. Calling it on an
	// already-stripped document is a no-op.
	StripAnswers(ctx context.Context, docID, style, replacement string) (int, error)
}
