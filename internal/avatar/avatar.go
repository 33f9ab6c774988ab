// Package avatar normalizes uploaded profile pictures.
package avatar

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	// Size is the edge length of a normalized avatar in pixels.
	Size = 512
	// ContentType of a normalized avatar.
	ContentType = "image/jpeg"
	// Extension of a normalized avatar file.
	Extension = ".jpg"

	quality = 85
)

// Normalize decodes data, center-crops it to a Size x Size square and encodes it as JPEG.
func Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = imaging.Fill(img, Size, Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
