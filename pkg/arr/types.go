package arr

import "encoding/json"

// Image is a poster, banner or fanart reference.
type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty"`
}

// DiskSpace describes one mounted volume.
type DiskSpace struct {
	Path       string `json:"path"`
	Label      string `json:"label"`
	FreeSpace  int64  `json:"freeSpace"`
	TotalSpace int64  `json:"totalSpace"`
}

// SystemStatus is the /system/status response.
type SystemStatus struct {
	Version        string `json:"version"`
	BuildTime      string `json:"buildTime"`
	IsDebug        bool   `json:"isDebug"`
	IsProduction   bool   `json:"isProduction"`
	IsAdmin        bool   `json:"isAdmin"`
	StartupPath    string `json:"startupPath"`
	AppData        string `json:"appData"`
	OsName         string `json:"osName"`
	OsVersion      string `json:"osVersion"`
	Branch         string `json:"branch"`
	Authentication string `json:"authentication"`
	URLBase        string `json:"urlBase"`
	RuntimeVersion string `json:"runtimeVersion"`
}

// RootFolder is a library root configured in the service.
type RootFolder struct {
	ID              int    `json:"id"`
	Path            string `json:"path"`
	FreeSpace       int64  `json:"freeSpace"`
	UnmappedFolders []struct {
		Name string `json:"name"`
		Path string `json:"path"`
	} `json:"unmappedFolders,omitempty"`
}

// Quality names a single quality definition.
type Quality struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	Resolution any    `json:"resolution,omitempty"`
}

// QualityProfile is a named set of allowed qualities.
type QualityProfile struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Cutoff json.RawMessage `json:"cutoff,omitempty"`
	Items  []struct {
		Allowed bool    `json:"allowed"`
		Quality Quality `json:"quality"`
	} `json:"items"`
}

// QueueItem holds the fields shared by Radarr and Sonarr queue entries.
type QueueItem struct {
	ID                      int             `json:"id"`
	Title                   string          `json:"title"`
	Status                  string          `json:"status"`
	TrackedDownloadStatus   string          `json:"trackedDownloadStatus"`
	Size                    float64         `json:"size"`
	SizeLeft                float64         `json:"sizeleft"`
	TimeLeft                string          `json:"timeleft,omitempty"`
	EstimatedCompletionTime string          `json:"estimatedCompletionTime,omitempty"`
	Protocol                string          `json:"protocol"`
	DownloadID              string          `json:"downloadId"`
	Quality                 json.RawMessage `json:"quality,omitempty"`
}

// Progress returns the completed fraction in the range 0-1.
func (q QueueItem) Progress() float64 {
	if q.Size <= 0 {
		return 0
	}
	return (q.Size - q.SizeLeft) / q.Size
}

// HistoryOptions pages and sorts a history query. Zero values are omitted.
type HistoryOptions struct {
	Page     int
	PageSize int
	SortKey  string
	SortDir  string // "asc" or "desc"
}

// HistoryRecord is one grab, failure or import event.
type HistoryRecord struct {
	ID          int               `json:"id"`
	EventType   string            `json:"eventType"`
	Date        string            `json:"date"`
	SourceTitle string            `json:"sourceTitle"`
	DownloadID  string            `json:"downloadId,omitempty"`
	MovieID     int               `json:"movieId,omitempty"`
	SeriesID    int               `json:"seriesId,omitempty"`
	EpisodeID   int               `json:"episodeId,omitempty"`
	Quality     json.RawMessage   `json:"quality,omitempty"`
	Data        map[string]string `json:"data,omitempty"`
}

// HistoryPage is a paged history response.
type HistoryPage struct {
	Page          int             `json:"page"`
	PageSize      int             `json:"pageSize"`
	SortKey       string          `json:"sortKey"`
	SortDirection string          `json:"sortDirection"`
	TotalRecords  int             `json:"totalRecords"`
	Records       []HistoryRecord `json:"records"`
}

// Command is the state of a queued or running command.
type Command struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	State     string         `json:"state,omitempty"`
	Status    string         `json:"status,omitempty"`
	Trigger   string         `json:"trigger,omitempty"`
	Queued    string         `json:"queued,omitempty"`
	StartedOn string         `json:"startedOn,omitempty"`
	Ended     string         `json:"ended,omitempty"`
	Message   string         `json:"message,omitempty"`
	Body      map[string]any `json:"body,omitempty"`
}

// ScanOptions are the optional fields of the downloaded-files scan commands.
type ScanOptions struct {
	Path             string
	DownloadClientID string // nzo id for SABnzbd, "drone" value for NZBGet, upper-case infohash for torrents
	ImportMode       string // "Move" or "Copy"
}

// Fields converts the options into command fields, omitting empty values.
func (o ScanOptions) Fields() map[string]any {
	fields := map[string]any{}
	if o.Path != "" {
		fields["path"] = o.Path
	}
	if o.DownloadClientID != "" {
		fields["downloadClientId"] = o.DownloadClientID
	}
	if o.ImportMode != "" {
		fields["importMode"] = o.ImportMode
	}
	return fields
}

// ReleasePush announces a release found outside the service's indexers.
type ReleasePush struct {
	Title       string `json:"title"`
	DownloadURL string `json:"downloadUrl"`
	Protocol    string `json:"protocol"` // "usenet" or "torrent"
	PublishDate string `json:"publishDate"`
}

// ReleaseDecision is the service's verdict on a pushed release.
type ReleaseDecision struct {
	GUID       string   `json:"guid"`
	Title      string   `json:"title"`
	Approved   bool     `json:"approved"`
	Rejected   bool     `json:"rejected"`
	Rejections []string `json:"rejections,omitempty"`
}
