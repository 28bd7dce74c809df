package mirror

import (
	"fmt"
	"time"
)

// MediaType classifies a catalog media item.
type MediaType uint8

const (
	// MediaTypeUnsupported - anything the mirror cannot download.
	MediaTypeUnsupported MediaType = iota
	// MediaTypePhoto - still image.
	MediaTypePhoto
	// MediaTypeVideo - video clip.
	MediaTypeVideo
)

// String returns a human-readable representation of the MediaType.
func (mt MediaType) String() string {
	switch mt {
	case MediaTypeUnsupported:
		return "unsupported"
	case MediaTypePhoto:
		return "photo"
	case MediaTypeVideo:
		return "video"
	default:
		return fmt.Sprintf("unknown: %d", mt)
	}
}

// MediaRecord is a resolved photo or video ready to be downloaded.
type MediaRecord struct {
	// ID is the media identifier.
	ID string
	// Title is the media title as shown in the catalog.
	Title string
	// Type is either MediaTypePhoto or MediaTypeVideo.
	Type MediaType
	// SourceURL is the direct download URL. Never empty.
	SourceURL string
	// DestFilename is the file name inside the album directory.
	DestFilename string
}

// MediaSet is a media mapping that preserves insertion order.
type MediaSet struct {
	keys    []string
	records map[string]*MediaRecord
}

// NewMediaSet creates an empty MediaSet.
func NewMediaSet() *MediaSet {
	return &MediaSet{
		records: make(map[string]*MediaRecord),
	}
}

// Put inserts or replaces a record. A replaced record keeps its original position.
func (ms *MediaSet) Put(record *MediaRecord) {
	if _, ok := ms.records[record.ID]; !ok {
		ms.keys = append(ms.keys, record.ID)
	}

	ms.records[record.ID] = record
}

// Get returns the record with the given ID.
func (ms *MediaSet) Get(id string) (*MediaRecord, bool) {
	record, ok := ms.records[id]

	return record, ok
}

// Len returns the number of records.
func (ms *MediaSet) Len() int {
	return len(ms.keys)
}

// Records returns the records in insertion order.
func (ms *MediaSet) Records() []*MediaRecord {
	result := make([]*MediaRecord, 0, len(ms.keys))
	for _, key := range ms.keys {
		result = append(result, ms.records[key])
	}

	return result
}

// Album is a named group of media mirrored into one directory.
type Album struct {
	// ID is the album identifier.
	ID string
	// Title is the album title as shown in the catalog.
	Title string
	// SanitizedTitle is the directory name derived from Title.
	SanitizedTitle string
	// Media holds the resolved media of the album.
	Media *MediaSet
}

// Catalog is the ordered set of harvested albums.
type Catalog struct {
	albums []*Album
	index  map[string]*Album
	// Photos is the number of resolved photos.
	Photos int64
	// Videos is the number of resolved videos.
	Videos int64
	// Unsupported is the number of dropped items of an unknown media type.
	Unsupported int64
	// Unresolved is the number of dropped items without a source URL.
	Unresolved int64
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[string]*Album),
	}
}

// Add appends an album. An album with a known ID is ignored.
func (c *Catalog) Add(album *Album) bool {
	if _, ok := c.index[album.ID]; ok {
		return false
	}

	c.albums = append(c.albums, album)
	c.index[album.ID] = album

	return true
}

// Album returns the album with the given ID.
func (c *Catalog) Album(id string) (*Album, bool) {
	album, ok := c.index[id]

	return album, ok
}

// Albums returns the albums in catalog order.
func (c *Catalog) Albums() []*Album {
	return c.albums
}

// MediaCount returns the number of resolved media across all albums.
func (c *Catalog) MediaCount() int {
	var count int
	for _, album := range c.albums {
		count += album.Media.Len()
	}

	return count
}

// DownloadOutcome aggregates the results of a materialization pass.
type DownloadOutcome struct {
	// Successes is the number of media published by this run.
	Successes int64
	// Skips is the number of media whose final file already existed.
	Skips int64
	// Retries is the number of failed attempts that were repeated.
	Retries int64
	// Failures is the number of media abandoned after exhausting the attempt limit.
	Failures int64
	// BytesDownloaded is the total number of bytes transferred.
	BytesDownloaded int64
	// Errors lists the media that were given up on.
	Errors []DownloadError
}

// DownloadError describes one media item the run gave up on.
type DownloadError struct {
	// AlbumTitle is the title of the album holding the media.
	AlbumTitle string
	// MediaID is the media identifier.
	MediaID string
	// SourceURL is the URL that could not be downloaded.
	SourceURL string
	// ErrorMessage is the last error seen.
	ErrorMessage string
}

// DownloadStatistics tracks a whole run for the summary.
type DownloadStatistics struct {
	// StartTime is when the run began.
	StartTime time.Time
	// EndTime is when the run completed.
	EndTime time.Time
	// IsDryRun indicates if this was a dry-run preview.
	IsDryRun bool
	// Albums is the number of harvested albums.
	Albums int64
	// Photos is the number of resolved photos.
	Photos int64
	// Videos is the number of resolved videos.
	Videos int64
	// Unsupported is the number of dropped items of an unknown media type.
	Unsupported int64
	// Unresolved is the number of dropped items without a source URL.
	Unresolved int64
	// Outcome is the result of materialization.
	Outcome DownloadOutcome
}
