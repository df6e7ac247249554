package arr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vmunix/hmwrap/pkg/dates"
)

// ErrMissingCommandName is returned by RunCommand without a command name.
var ErrMissingCommandName = errors.New("command name required")

// CalendarQuery builds the start/end query of a calendar request. Zero
// inputs are omitted and the service picks its default window.
func CalendarQuery(start, end dates.Input) (url.Values, error) {
	q := url.Values{}
	if !start.IsZero() {
		s, err := dates.Normalize(start)
		if err != nil {
			return nil, fmt.Errorf("calendar start: %w", err)
		}
		q.Set("start", s)
	}
	if !end.IsZero() {
		e, err := dates.Normalize(end)
		if err != nil {
			return nil, fmt.Errorf("calendar end: %w", err)
		}
		q.Set("end", e)
	}
	return q, nil
}

// RunCommand queues the named command. Nil field values are dropped.
func (c *Client) RunCommand(ctx context.Context, name string, fields map[string]any) (*Command, error) {
	if name == "" {
		return nil, ErrMissingCommandName
	}

	body := map[string]any{"name": name}
	for k, v := range fields {
		if v == nil || k == "name" {
			continue
		}
		body[k] = v
	}

	var cmd Command
	if err := c.Post(ctx, "/command", body, &cmd); err != nil {
		return nil, fmt.Errorf("run command %s: %w", name, err)
	}
	if c.log != nil {
		c.log.Info("command queued", "name", name, "id", cmd.ID)
	}
	return &cmd, nil
}

// Commands returns all currently started commands.
func (c *Client) Commands(ctx context.Context) ([]Command, error) {
	var cmds []Command
	if err := c.Get(ctx, "/command", nil, &cmds); err != nil {
		return nil, fmt.Errorf("get commands: %w", err)
	}
	return cmds, nil
}

// Command returns the status of a single command.
func (c *Client) Command(ctx context.Context, id int) (*Command, error) {
	var cmd Command
	if err := c.Get(ctx, "/command/"+strconv.Itoa(id), nil, &cmd); err != nil {
		return nil, fmt.Errorf("get command %d: %w", id, err)
	}
	return &cmd, nil
}

// DiskSpace returns the free space of every volume the service sees.
func (c *Client) DiskSpace(ctx context.Context) ([]DiskSpace, error) {
	var disks []DiskSpace
	if err := c.Get(ctx, "/diskspace", nil, &disks); err != nil {
		return nil, fmt.Errorf("get diskspace: %w", err)
	}
	return disks, nil
}

// SystemStatus returns version and runtime information.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.Get(ctx, "/system/status", nil, &status); err != nil {
		return nil, fmt.Errorf("get system status: %w", err)
	}
	return &status, nil
}

// RootFolders returns the configured library roots.
func (c *Client) RootFolders(ctx context.Context) ([]RootFolder, error) {
	var folders []RootFolder
	if err := c.Get(ctx, "/rootfolder", nil, &folders); err != nil {
		return nil, fmt.Errorf("get root folders: %w", err)
	}
	return folders, nil
}

// QualityProfiles returns all quality profiles.
func (c *Client) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	var profiles []QualityProfile
	if err := c.Get(ctx, "/profile", nil, &profiles); err != nil {
		return nil, fmt.Errorf("get quality profiles: %w", err)
	}
	return profiles, nil
}

// History returns a page of grabs, failures and imports. Page is 1-indexed;
// zero Page and PageSize default to 1 and 10.
func (c *Client) History(ctx context.Context, opts HistoryOptions) (*HistoryPage, error) {
	q := url.Values{}
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	if opts.SortKey != "" {
		q.Set("sortKey", opts.SortKey)
	}
	if opts.SortDir != "" {
		q.Set("sortDir", opts.SortDir)
	}

	var hp HistoryPage
	if err := c.Get(ctx, "/history", q, &hp); err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return &hp, nil
}

// PushRelease notifies the service of a release. The publish date accepts
// anything dates.Normalize does.
func (c *Client) PushRelease(ctx context.Context, title, downloadURL, protocol string, published dates.Input) ([]ReleaseDecision, error) {
	publishDate, err := dates.Normalize(published)
	if err != nil {
		return nil, fmt.Errorf("push release: %w", err)
	}

	body := ReleasePush{
		Title:       title,
		DownloadURL: downloadURL,
		Protocol:    protocol,
		PublishDate: publishDate,
	}

	// Older API versions answer with a single object instead of a list.
	var raw json.RawMessage
	if err := c.Post(ctx, "/release/push", body, &raw); err != nil {
		return nil, fmt.Errorf("push release: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var decisions []ReleaseDecision
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &decisions); err != nil {
			return nil, fmt.Errorf("decode release decisions: %w", err)
		}
		return decisions, nil
	}

	var single ReleaseDecision
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode release decision: %w", err)
	}
	return []ReleaseDecision{single}, nil
}
