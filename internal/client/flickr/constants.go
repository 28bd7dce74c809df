package flickr

const (
	// flickrAPIRESTURI is the URI path of the REST endpoint.
	flickrAPIRESTURI = "services/rest/"

	// Method names of the REST API.
	methodPhotosetsGetList   = "flickr.photosets.getList"
	methodPhotosetsGetPhotos = "flickr.photosets.getPhotos"
	methodPhotosGetSizes     = "flickr.photos.getSizes"

	// mediaListExtras are the extra fields requested with every album media page.
	// url_l carries the photo source URL, media carries the photo/video discriminator.
	mediaListExtras = "original_format,url_l,media"

	// statusOK is the value of the "stat" field in successful responses.
	statusOK = "ok"
)

const (
	// renditionsCacheSize defines the maximum number of rendition lists to cache.
	// A video shared by several albums is looked up once per run.
	renditionsCacheSize = 10000
)

// Media discriminator values returned in the "media" field.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

// LabelVideoOriginal is the rendition label of a video's original upload.
const LabelVideoOriginal = "Video Original"
