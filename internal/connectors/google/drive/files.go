// Package drive wraps the Google Drive v3 API behind the file management
// port used by the core services.
package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	drivev3 "google.golang.org/api/drive/v3"

	"github.com/classkit-labs/handout-cli/internal/connectors/google"
	"github.com/classkit-labs/handout-cli/internal/core/domain"
	"github.com/classkit-labs/handout-cli/internal/core/ports/driven"
)

// fileFields is the metadata subset requested on every files.get call.
const fileFields = "id, name, mimeType, parents, shortcutDetails"

// Client implements the file management port over the Drive v3 API.
type Client struct {
	svc     *drivev3.Service
	limiter *google.RateLimiter
}

var _ driven.FileManager = (*Client)(nil)

// NewClient creates a Drive client with the default rate limiter.
func NewClient(svc *drivev3.Service) *Client {
	return &Client{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDrive),
	}
}

// Stat returns metadata for a file, resolving shortcuts to their target.
func (c *Client) Stat(ctx context.Context, fileID string) (*domain.FileInfo, error) {
	info, err := c.get(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if info.IsShortcut() && info.ShortcutTarget != "" {
		target, err := c.get(ctx, info.ShortcutTarget)
		if err != nil {
			return nil, fmt.Errorf("resolve shortcut target: %w", err)
		}
		return target, nil
	}

	return info, nil
}

func (c *Client) get(ctx context.Context, fileID string) (*domain.FileInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	f, err := c.svc.Files.Get(fileID).
		Fields(fileFields).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err, "get file")
	}

	return toFileInfo(f), nil
}

// FindFile returns the ID of a non-trashed file with the given name in the
// parent folder. Returns ("", nil) when no match exists.
func (c *Client) FindFile(ctx context.Context, name, parentID, mimeType string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	terms := []string{
		fmt.Sprintf("name = '%s'", escapeQuery(name)),
		"trashed = false",
	}
	if parentID != "" {
		terms = append(terms, fmt.Sprintf("'%s' in parents", escapeQuery(parentID)))
	}
	if mimeType != "" {
		terms = append(terms, fmt.Sprintf("mimeType = '%s'", mimeType))
	}

	list, err := c.svc.Files.List().
		Q(strings.Join(terms, " and ")).
		Fields("files(id)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", google.WrapError(err, "search files")
	}

	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

// ResolveFolder turns a folder reference into a folder ID. The reference is
// either a raw ID, a Drive URL, or a /-separated path relative to parentID
// where "." stays in place, ".." walks up to the parent folder, and a
// leading "/" anchors the path at the drive root.
func (c *Client) ResolveFolder(ctx context.Context, ref string, makeDirs bool, parentID string) (string, error) {
	if parentID == "" {
		parentID = "root"
	}

	if id, err := domain.ExtractFileID(ref); err == nil {
		info, err := c.Stat(ctx, id)
		if err != nil {
			return "", err
		}
		if !info.IsFolder() {
			return "", fmt.Errorf("%q: %w", ref, domain.ErrNotAFolder)
		}
		return info.ID, nil
	}

	ref = strings.TrimSpace(ref)
	current := parentID
	if strings.HasPrefix(ref, "/") {
		current = "root"
		ref = strings.TrimPrefix(ref, "/")
	}
	for _, segment := range strings.Split(ref, "/") {
		switch segment {
		case ".", "":
			continue
		case "..":
			parent, err := c.parentOf(ctx, current)
			if err != nil {
				return "", err
			}
			current = parent
			continue
		}

		id, err := c.findFolder(ctx, segment, current)
		if err != nil {
			return "", err
		}
		if id == "" {
			if !makeDirs {
				return "", fmt.Errorf("folder %q: %w", segment, domain.ErrNotFound)
			}
			id, err = c.CreateFolder(ctx, segment, current)
			if err != nil {
				return "", err
			}
		}
		current = id
	}

	return current, nil
}

// parentOf returns a folder's parent folder ID; a folder with no parent
// is the drive root.
func (c *Client) parentOf(ctx context.Context, folderID string) (string, error) {
	info, err := c.get(ctx, folderID)
	if err != nil {
		return "", fmt.Errorf("resolve parent: %w", err)
	}
	if len(info.Parents) == 0 {
		return "root", nil
	}
	return info.Parents[0], nil
}

// findFolder finds a child folder by name during path walking. A shortcut
// whose target is a folder counts and resolves to the target, so paths may
// pass through shared folders linked into the tree. Returns ("", nil) when
// no match exists.
func (c *Client) findFolder(ctx context.Context, name, parentID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	q := fmt.Sprintf(
		"name = '%s' and '%s' in parents and trashed = false and (mimeType = '%s' or mimeType = '%s')",
		escapeQuery(name), escapeQuery(parentID), domain.MimeTypeFolder, domain.MimeTypeShortcut,
	)
	list, err := c.svc.Files.List().
		Q(q).
		Fields("files(id, mimeType, shortcutDetails)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", google.WrapError(err, "search folders")
	}

	for _, f := range list.Files {
		if f.MimeType == domain.MimeTypeFolder {
			return f.Id, nil
		}
		if f.ShortcutDetails != nil && f.ShortcutDetails.TargetMimeType == domain.MimeTypeFolder {
			return f.ShortcutDetails.TargetId, nil
		}
	}
	return "", nil
}

// CreateFolder creates a folder and returns its ID.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	f, err := c.svc.Files.Create(&drivev3.File{
		Name:     name,
		MimeType: domain.MimeTypeFolder,
		Parents:  []string{parentID},
	}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", google.WrapError(err, "create folder")
	}

	return f.Id, nil
}

// ListChildren lists the non-trashed children of a folder, following
// pagination until the listing is exhausted.
func (c *Client) ListChildren(ctx context.Context, folderID string) ([]domain.FileInfo, error) {
	var children []domain.FileInfo

	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Files.List().
			Q(fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folderID))).
			Fields("nextPageToken, files(" + fileFields + ")").
			PageSize(100).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, google.WrapError(err, "list folder")
		}

		for _, f := range list.Files {
			children = append(children, *toFileInfo(f))
		}

		if list.NextPageToken == "" {
			return children, nil
		}
		pageToken = list.NextPageToken
	}
}

// Copy duplicates a file under the given name and moves the copy into destID
// when destID is non-empty.
func (c *Client) Copy(ctx context.Context, fileID, name, destID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	copied, err := c.svc.Files.Copy(fileID, &drivev3.File{Name: name}).
		Fields("id, parents").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", google.WrapError(err, "copy file")
	}

	if destID == "" || contains(copied.Parents, destID) {
		return copied.Id, nil
	}

	if err := c.move(ctx, copied.Id, copied.Parents, destID); err != nil {
		return "", err
	}
	return copied.Id, nil
}

func (c *Client) move(ctx context.Context, fileID string, oldParents []string, destID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := c.svc.Files.Update(fileID, nil).
		AddParents(destID).
		RemoveParents(strings.Join(oldParents, ",")).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return google.WrapError(err, "move file")
	}
	return nil
}

// CopyShortcut creates a new shortcut pointing at the same target.
func (c *Client) CopyShortcut(ctx context.Context, file *domain.FileInfo, name, destID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	created, err := c.svc.Files.Create(&drivev3.File{
		Name:     name,
		MimeType: domain.MimeTypeShortcut,
		Parents:  []string{destID},
		ShortcutDetails: &drivev3.FileShortcutDetails{
			TargetId: file.ShortcutTarget,
		},
	}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", google.WrapError(err, "create shortcut")
	}

	return created.Id, nil
}

// Delete permanently removes a file.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	err := c.svc.Files.Delete(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return google.WrapError(err, "delete file")
	}
	return nil
}

// Share grants one user access to a file.
func (c *Client) Share(ctx context.Context, fileID string, p domain.Permission) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	call := c.svc.Permissions.Create(fileID, &drivev3.Permission{
		Type:         "user",
		Role:         p.Role,
		EmailAddress: p.Email,
	}).
		SendNotificationEmail(p.Notify).
		SupportsAllDrives(true).
		Context(ctx)
	if p.Notify && p.Message != "" {
		call = call.EmailMessage(p.Message)
	}

	if _, err := call.Do(); err != nil {
		return google.WrapError(err, "share file")
	}
	return nil
}

// Download fetches a file's raw content.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Get(fileID).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, google.WrapError(err, "download file")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download body: %w", err)
	}
	return data, nil
}

func toFileInfo(f *drivev3.File) *domain.FileInfo {
	info := &domain.FileInfo{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Parents:  f.Parents,
	}
	if f.ShortcutDetails != nil {
		info.ShortcutTarget = f.ShortcutDetails.TargetId
		info.ShortcutTargetMime = f.ShortcutDetails.TargetMimeType
	}
	return info
}

// escapeQuery escapes a value for interpolation into a Drive search query.
func escapeQuery(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
