package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/oshokin/flickr-mirror/internal/constants"
)

// tempOwnerPath returns the path of the file naming the source URL that tempPath belongs to.
func tempOwnerPath(tempPath string) string {
	return tempPath + constants.TempOwnerSuffix
}

// claimTempFile makes tempPath belong to sourceURL.
// Bytes left behind by a different item are discarded, so the fetcher never resumes
// one item on top of another. Bytes left by the same item are kept for resuming.
func claimTempFile(tempPath, sourceURL string) error {
	ownerPath := tempOwnerPath(tempPath)

	owner, err := os.ReadFile(ownerPath) //nolint:gosec // Path is built from the output directory.
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w '%s': %w", ErrPrepareTempFile, ownerPath, err)
	}

	if err == nil && string(owner) == sourceURL {
		return nil
	}

	if err = removeIfExists(tempPath); err != nil {
		return fmt.Errorf("%w '%s': %w", ErrPrepareTempFile, tempPath, err)
	}

	if err = os.WriteFile(ownerPath, []byte(sourceURL), constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("%w '%s': %w", ErrPrepareTempFile, ownerPath, err)
	}

	return nil
}

// releaseTempFile drops the temp file and its owner record.
// After a successful rename only the owner record is left to remove.
func releaseTempFile(tempPath string) error {
	if err := removeIfExists(tempPath); err != nil {
		return fmt.Errorf("%w '%s': %w", ErrPrepareTempFile, tempPath, err)
	}

	if err := removeIfExists(tempOwnerPath(tempPath)); err != nil {
		return fmt.Errorf("%w '%s': %w", ErrPrepareTempFile, tempOwnerPath(tempPath), err)
	}

	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
