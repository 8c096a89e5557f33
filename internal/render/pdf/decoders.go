package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Register a broad set of decoders so logos can arrive in any common
	// raster format; everything is re-encoded as PNG before embedding.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NormalizeImage decodes data in any registered format and returns it as
// PNG along with the detected source format.
func NormalizeImage(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	if format == "png" {
		return data, format, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, format, fmt.Errorf("failed to encode image as PNG: %w", err)
	}
	return buf.Bytes(), format, nil
}
