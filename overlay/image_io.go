package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	_ "image/gif"
	_ "image/jpeg"

	"cloud.google.com/go/storage"
	"github.com/carbocation/microbemap"
	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

// ImageFromBytes creates an image from the specified bytes. Must be PNG, GIF,
// BMP, or JPEG formatted (based on the decoders we have imported).
func ImageFromBytes(imgBytes []byte) (image.Image, error) {
	imgReader := bytes.NewReader(imgBytes)

	// Extract and decode the image.
	img, _, err := image.Decode(imgReader)

	return img, err
}

// OpenImageFromLocalFileOrGoogleStorage decodes the image at filePath. A nil
// client is fine for local files.
func OpenImageFromLocalFileOrGoogleStorage(filePath string, storageClient *storage.Client) (image.Image, error) {
	f, err := microbemap.MaybeOpenFromGoogleStorage(filePath, storageClient)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The image decoder swallows errors, so we won't see i/o errors if they
	// happen during image decoding. To capture these, we read the full image
	// into memory here, and pass a byte reader to the image decoder.
	imgBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return ImageFromBytes(imgBytes)
}

// SaveImage writes img to outPath. Local files are encoded according to their
// extension (.png, .jpg, .gif, .bmp, .tif); gs:// objects are always PNG.
func SaveImage(img image.Image, outPath string, storageClient *storage.Client) error {
	if !microbemap.IsGoogleStoragePath(outPath) {
		if err := imaging.Save(img, outPath); err != nil {
			return pfx.Err(fmt.Errorf("%s: %w", outPath, err))
		}

		return nil
	}

	w, err := microbemap.MaybeCreateOnGoogleStorage(outPath, storageClient)
	if err != nil {
		return pfx.Err(err)
	}

	if err := png.Encode(w, img); err != nil {
		w.Close()
		return pfx.Err(err)
	}

	// The upload is only committed on Close
	return pfx.Err(w.Close())
}
