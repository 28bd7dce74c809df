package constants

import "os"

const (
	// DefaultFilePermissions sets the default permissions for regular files: (rw-r--r--).
	// Owner: read and write;
	// Group: read;
	// Others: read.
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the default permissions for regular folders: (rwxr-xr-x).
	// Owner: read, write, and execute;
	// Group: read and execute;
	// Others: read and execute.
	DefaultFolderPermissions os.FileMode = 0o755
)

// File name constants shared by the materializer and the fetcher.
const (
	// ExtensionVideo is the fixed extension of every mirrored video.
	// Video source URLs carry no reliable extension, so the media ID plus this suffix is used.
	ExtensionVideo = ".mov"

	// TempDownloadFilename is the per-album scratch file every transfer writes into
	// before it is renamed to its final name.
	TempDownloadFilename = "flickr-mirror_temp"

	// TempOwnerSuffix is appended to the temp file name to get the file holding
	// the source URL of the transfer the temp file belongs to.
	TempOwnerSuffix = ".source"

	// DefaultLogFilename is the name of the warnings log created inside the output directory.
	DefaultLogFilename = "flickr-mirror.log"
)
