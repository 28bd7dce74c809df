package flickr

import "strings"

// Content is the {"_content": "..."} wrapper the API uses for some text fields.
type Content struct {
	Content string `json:"_content"`
}

// Photoset is one album entry of flickr.photosets.getList.
type Photoset struct {
	// ID is the photoset identifier.
	ID string `json:"id"`
	// Title is nil when the API omits the field for placeholder entries.
	Title *Content `json:"title"`
}

// TitleText returns the album title and whether the entry has a usable one.
func (p *Photoset) TitleText() (string, bool) {
	if p == nil || p.Title == nil {
		return "", false
	}

	title := p.Title.Content

	return title, strings.TrimSpace(title) != ""
}

// Photo is one media entry of flickr.photosets.getPhotos.
type Photo struct {
	// ID is the media identifier.
	ID string `json:"id"`
	// Title is the media title.
	Title string `json:"title"`
	// Media is the discriminator: "photo", "video", or anything else.
	Media string `json:"media"`
	// URLLarge is the large photo source URL (extras=url_l). Empty if absent.
	URLLarge string `json:"url_l"`
	// OriginalFormat is the original file extension (extras=original_format).
	OriginalFormat string `json:"originalformat"`
}

// Size is one rendition of flickr.photos.getSizes.
type Size struct {
	// Label names the rendition, e.g. "Large" or "Video Original".
	Label string `json:"label"`
	// Source is the direct URL of the rendition.
	Source string `json:"source"`
	// Media is "photo" or "video".
	Media string `json:"media"`
}

// apiStatus is embedded into every response.
type apiStatus struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *apiStatus) status() *apiStatus {
	return s
}

// apiResponse is implemented by every response type.
type apiResponse interface {
	status() *apiStatus
}

// getPhotosetsListResponse is the body of flickr.photosets.getList.
type getPhotosetsListResponse struct {
	apiStatus

	Photosets *struct {
		Photoset []*Photoset `json:"photoset"`
	} `json:"photosets"`
}

// getPhotosetPhotosResponse is the body of flickr.photosets.getPhotos.
type getPhotosetPhotosResponse struct {
	apiStatus

	Photoset *struct {
		Photo []*Photo `json:"photo"`
	} `json:"photoset"`
}

// getSizesResponse is the body of flickr.photos.getSizes.
type getSizesResponse struct {
	apiStatus

	Sizes *struct {
		Size []*Size `json:"size"`
	} `json:"sizes"`
}

// FetchJSONResult is the decoded body of an API call along with its HTTP status.
type FetchJSONResult[T any] struct {
	// Data is the decoded response, nil on failure.
	Data *T
	// StatusCode is the HTTP status code of the last attempt.
	StatusCode int
}
