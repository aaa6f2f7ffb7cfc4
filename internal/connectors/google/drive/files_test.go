package drive

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

// newTestClient points a Drive client at a stub API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	svc, err := drivev3.NewService(context.Background(),
		option.WithEndpoint(ts.URL), option.WithoutAuthentication())
	require.NoError(t, err)
	return NewClient(svc)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func TestResolveFolder_DotDotWalksToParent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/files":
			writeJSON(w, fmt.Sprintf(
				`{"files": [{"id": "sub-id", "mimeType": "%s"}]}`, domain.MimeTypeFolder))
		case strings.HasSuffix(r.URL.Path, "/files/sub-id"):
			writeJSON(w, fmt.Sprintf(
				`{"id": "sub-id", "name": "sub", "mimeType": "%s", "parents": ["parentX"]}`,
				domain.MimeTypeFolder))
		default:
			http.NotFound(w, r)
		}
	}))

	id, err := client.ResolveFolder(context.Background(), "sub/..", false, "parentX")
	require.NoError(t, err)
	assert.Equal(t, "parentX", id, "descending and coming back up lands on the starting folder")
}

func TestResolveFolder_DotDotAtRootStaysAtRoot(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/files/root") {
			writeJSON(w, fmt.Sprintf(
				`{"id": "root-id", "name": "My Drive", "mimeType": "%s"}`, domain.MimeTypeFolder))
			return
		}
		http.NotFound(w, r)
	}))

	id, err := client.ResolveFolder(context.Background(), "..", false, "root")
	require.NoError(t, err)
	assert.Equal(t, "root", id)
}

func TestResolveFolder_LeadingSlashAnchorsAtRoot(t *testing.T) {
	var query string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		writeJSON(w, fmt.Sprintf(
			`{"files": [{"id": "teams-id", "mimeType": "%s"}]}`, domain.MimeTypeFolder))
	}))

	id, err := client.ResolveFolder(context.Background(), "/teams", false, "parentX")
	require.NoError(t, err)
	assert.Equal(t, "teams-id", id)
	assert.Contains(t, query, "'root' in parents", "absolute paths ignore the starting folder")
	assert.NotContains(t, query, "parentX")
}

func TestResolveFolder_FollowsFolderShortcut(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fmt.Sprintf(
			`{"files": [{"id": "sc-id", "mimeType": "%s",
			  "shortcutDetails": {"targetId": "target-id", "targetMimeType": "%s"}}]}`,
			domain.MimeTypeShortcut, domain.MimeTypeFolder))
	}))

	id, err := client.ResolveFolder(context.Background(), "shared", false, "root")
	require.NoError(t, err)
	assert.Equal(t, "target-id", id, "a shortcut to a folder resolves to its target")
}

func TestResolveFolder_PlainFolderPreferredOverShortcut(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fmt.Sprintf(
			`{"files": [
			   {"id": "sc-id", "mimeType": "%s",
			    "shortcutDetails": {"targetId": "target-id", "targetMimeType": "%s"}},
			   {"id": "folder-id", "mimeType": "%s"}]}`,
			domain.MimeTypeShortcut, domain.MimeTypeFolder, domain.MimeTypeFolder))
	}))

	id, err := client.ResolveFolder(context.Background(), "shared", false, "root")
	require.NoError(t, err)
	assert.Equal(t, "folder-id", id)
}

func TestResolveFolder_MissingSegment(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"files": []}`)
	}))

	_, err := client.ResolveFolder(context.Background(), "nope", false, "root")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveFolder_MakeDirsCreatesMissingSegment(t *testing.T) {
	var created bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			created = true
			writeJSON(w, `{"id": "new-id"}`)
			return
		}
		writeJSON(w, `{"files": []}`)
	}))

	id, err := client.ResolveFolder(context.Background(), "week1", true, "root")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "new-id", id)
}
