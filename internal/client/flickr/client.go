package flickr

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/oshokin/flickr-mirror/internal/config"
	"github.com/oshokin/flickr-mirror/internal/logger"
	http_transport "github.com/oshokin/flickr-mirror/internal/transport/http"
	"github.com/oshokin/flickr-mirror/internal/utils"
	"github.com/oshokin/flickr-mirror/internal/version"
)

// Client defines the catalog operations needed to harvest a user's albums.
type Client interface {
	// ListAlbums returns one page of the user's albums. Pages are numbered from 1.
	ListAlbums(ctx context.Context, userID string, pageSize, page int) ([]*Photoset, error)
	// ListAlbumMedia returns one page of an album's media, including photo source URLs.
	ListAlbumMedia(ctx context.Context, albumID, userID string, pageSize, page int) ([]*Photo, error)
	// ResolveVideoURL returns the available renditions of a media item.
	// The caller picks the one labeled LabelVideoOriginal.
	ResolveVideoURL(ctx context.Context, mediaID, userID string) ([]*Size, error)
}

// ClientImpl implements the Client interface for the Flickr REST API.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// restURL is the full URL of the REST endpoint.
	restURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// limiter paces API calls; nil disables pacing.
	limiter *rate.Limiter
	// renditionsCache caches rendition lists by media ID.
	renditionsCache *lru.Cache[string, []*Size]
}

// NewClient creates and returns a new instance of ClientImpl.
func NewClient(cfg *config.Config) (Client, error) {
	baseURL, err := url.Parse(cfg.FlickrBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid host URL: %w", err)
	}

	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewOAuthSigner(
				http_transport.NewLogTransport(http.DefaultTransport, config.DefaultMaxLogLength),
				http_transport.OAuthCredentials{
					ConsumerKey:    cfg.APIKey,
					ConsumerSecret: cfg.APISecret,
					Token:          cfg.OAuthToken,
					TokenSecret:    cfg.OAuthTokenSecret,
				}),
			utils.NewProductUserAgentProvider(http_transport.DefaultProductName, version.Short())),
		Timeout: http_transport.DefaultTimeout,
	}

	renditionsCache, err := lru.New[string, []*Size](renditionsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create renditions cache: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.APIRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.APIRequestsPerSecond), 1)
	}

	client := &ClientImpl{
		cfg:             cfg,
		restURL:         baseURL.JoinPath(flickrAPIRESTURI).String(),
		httpClient:      httpClient,
		limiter:         limiter,
		renditionsCache: renditionsCache,
	}

	return client, nil
}

// ListAlbums returns one page of the user's albums.
func (c *ClientImpl) ListAlbums(ctx context.Context, userID string, pageSize, page int) ([]*Photoset, error) {
	query := url.Values{}
	query.Set("user_id", userID)
	query.Set("per_page", strconv.Itoa(pageSize))
	query.Set("page", strconv.Itoa(page))

	result, err := callMethod[getPhotosetsListResponse](c, ctx, methodPhotosetsGetList, query)
	if err != nil {
		return nil, err
	}

	if result.Data.Photosets == nil {
		return nil, fmt.Errorf("%w: %s has no photosets object", ErrUnexpectedResponseFormat, methodPhotosetsGetList)
	}

	return result.Data.Photosets.Photoset, nil
}

// ListAlbumMedia returns one page of an album's media.
func (c *ClientImpl) ListAlbumMedia(
	ctx context.Context,
	albumID, userID string,
	pageSize, page int,
) ([]*Photo, error) {
	query := url.Values{}
	query.Set("photoset_id", albumID)
	query.Set("user_id", userID)
	query.Set("extras", mediaListExtras)
	query.Set("per_page", strconv.Itoa(pageSize))
	query.Set("page", strconv.Itoa(page))

	result, err := callMethod[getPhotosetPhotosResponse](c, ctx, methodPhotosetsGetPhotos, query)
	if err != nil {
		return nil, err
	}

	if result.Data.Photoset == nil {
		return nil, fmt.Errorf("%w: %s has no photoset object", ErrUnexpectedResponseFormat, methodPhotosetsGetPhotos)
	}

	return result.Data.Photoset.Photo, nil
}

// ResolveVideoURL returns the available renditions of a media item.
// Uses an LRU cache because the same video may belong to several albums.
func (c *ClientImpl) ResolveVideoURL(ctx context.Context, mediaID, userID string) ([]*Size, error) {
	if cached, ok := c.renditionsCache.Get(mediaID); ok {
		logger.Debugf(ctx, "Renditions cache hit for media ID: %s", mediaID)

		return cached, nil
	}

	query := url.Values{}
	query.Set("photo_id", mediaID)
	query.Set("user_id", userID)

	result, err := callMethod[getSizesResponse](c, ctx, methodPhotosGetSizes, query)
	if err != nil {
		return nil, err
	}

	if result.Data.Sizes == nil {
		return nil, fmt.Errorf("%w: %s has no sizes object", ErrUnexpectedResponseFormat, methodPhotosGetSizes)
	}

	sizes := result.Data.Sizes.Size
	c.renditionsCache.Add(mediaID, sizes)

	return sizes, nil
}
