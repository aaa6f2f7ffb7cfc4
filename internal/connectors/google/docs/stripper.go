// Package docs wraps the Google Docs v1 API behind the document editing
// port used by the duplication service.
package docs

import (
	"context"

	docsv1 "google.golang.org/api/docs/v1"

	"github.com/classkit-labs/handout-cli/internal/connectors/google"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
)

// Editor strips answer paragraphs from Google Docs.
type Editor struct {
	svc     *docsv1.Service
	limiter *google.RateLimiter
}

var _ driven.DocumentEditor = (*Editor)(nil)

// NewEditor creates a Docs editor with the default rate limiter.
func NewEditor(svc *docsv1.Service) *Editor {
	return &Editor{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDocs),
	}
}

// StripAnswers removes the text of every paragraph styled with the given
// named style, optionally replacing each with replacement text. Returns the
// number of paragraphs emptied.
func (e *Editor) StripAnswers(ctx context.Context, docID, style, replacement string) (int, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	doc, err := e.svc.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return 0, google.WrapError(err, "get document")
	}

	requests := BuildStripRequests(doc.Body.Content, style, replacement)
	if len(requests) == 0 {
		return 0, nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	_, err = e.svc.Documents.BatchUpdate(docID, &docsv1.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return 0, google.WrapError(err, "strip answers")
	}

	return countStripped(requests), nil
}

// BuildStripRequests walks document content and produces the batch update
// requests that empty every paragraph of the given named style. Requests are
// ordered from the end of the document backwards so that earlier deletions
// do not shift the indices of later ones. Paragraphs inside table cells are
// included.
func BuildStripRequests(content []*docsv1.StructuralElement, style, replacement string) []*docsv1.Request {
	var requests []*docsv1.Request

	for i := len(content) - 1; i >= 0; i-- {
		el := content[i]

		if el.Table != nil {
			for r := len(el.Table.TableRows) - 1; r >= 0; r-- {
				row := el.Table.TableRows[r]
				for c := len(row.TableCells) - 1; c >= 0; c-- {
					requests = append(requests, BuildStripRequests(row.TableCells[c].Content, style, replacement)...)
				}
			}
			continue
		}

		p := el.Paragraph
		if p == nil || p.ParagraphStyle == nil || p.ParagraphStyle.NamedStyleType != style {
			continue
		}

		// The range excludes the paragraph's trailing newline so the
		// paragraph itself survives with its style intact. A paragraph
		// that is already empty produces no request, so a second pass
		// over the same document is a no-op.
		start, end := el.StartIndex, el.EndIndex-1
		if end <= start {
			continue
		}

		requests = append(requests, &docsv1.Request{
			DeleteContentRange: &docsv1.DeleteContentRangeRequest{
				Range: &docsv1.Range{StartIndex: start, EndIndex: end},
			},
		})
		if replacement != "" {
			requests = append(requests, &docsv1.Request{
				InsertText: &docsv1.InsertTextRequest{
					Location: &docsv1.Location{Index: start},
					Text:     replacement,
				},
			})
		}
	}

	return requests
}

func countStripped(requests []*docsv1.Request) int {
	n := 0
	for _, r := range requests {
		if r.DeleteContentRange != nil {
			n++
		}
	}
	return n
}
