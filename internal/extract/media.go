package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/docsift/docsift/internal/ocr"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// visionMediaTypes maps upload content types to the media types vision
// APIs accept. TIFF and BMP are not accepted and get re-encoded to PNG.
var visionMediaTypes = map[string]string{
	"image/png":  "image/png",
	"image/jpeg": "image/jpeg",
	"image/jpg":  "image/jpeg",
	"image/webp": "image/webp",
	"image/gif":  "image/gif",
	"image/tiff": "image/png",
	"image/bmp":  "image/png",
}

// NormalizeImage prepares uploaded image bytes for a vision call: it maps
// the content type to an accepted media type and re-encodes formats the
// vision APIs reject. Undecodable bytes fail as invalid input.
func NormalizeImage(data []byte, contentType string) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", &ocr.InvalidInputError{Reason: "empty image upload"}
	}

	mediaType, ok := visionMediaTypes[contentType]
	if !ok {
		mediaType = "image/png"
	}

	if contentType != "image/tiff" && contentType != "image/bmp" {
		return data, mediaType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &ocr.InvalidInputError{Reason: "unsupported or corrupt image", Err: err}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("re-encode image as PNG: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}
