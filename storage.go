package microbemap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const googleStoragePrefix = "gs://"

// IsGoogleStoragePath reports whether path points to a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, googleStoragePrefix)
}

// AnyGoogleStoragePath reports whether at least one of the paths points to
// Google Storage. Used to decide whether a storage client is needed at all.
func AnyGoogleStoragePath(paths ...string) bool {
	for _, p := range paths {
		if IsGoogleStoragePath(p) {
			return true
		}
	}

	return false
}

func splitGoogleStoragePath(path string) (bucketName, objectName string, err error) {
	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, googleStoragePrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// MaybeOpenFromGoogleStorage opens path for reading. Paths that start with
// gs:// are streamed from Google Storage, which requires a non-nil client.
// Everything else is opened from the local filesystem.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (io.ReadCloser, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: a google storage client is required to read gs:// paths", path)
		}

		bucketName, objectName, err := splitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		// Open the bucket with default credentials
		rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(context.Background())
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return rdr, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// MaybeCreateOnGoogleStorage opens path for writing, either as a new Google
// Storage object (gs://) or as a local file. The object is only committed to
// Google Storage once Close returns without error.
func MaybeCreateOnGoogleStorage(path string, client *storage.Client) (io.WriteCloser, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: a google storage client is required to write gs:// paths", path)
		}

		bucketName, objectName, err := splitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		return client.Bucket(bucketName).Object(objectName).NewWriter(context.Background()), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}
