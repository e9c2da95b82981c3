package utils

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

const (
	maxImageWidth   = 2000
	imageQuality    = 85
	webpContentType = "image/webp"
	jpegContentType = "image/jpeg"
)

// ProcessImage decodes an uploaded image, caps its width and re-encodes it
// as WebP. When the WebP encoder fails the image falls back to JPEG.
// Returns the encoded bytes and their content type.
func ProcessImage(r io.Reader) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: imageQuality}); err != nil {
		log.Warn().Err(err).Str("format", format).Msg("webp encode failed, using jpeg")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: imageQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), jpegContentType, nil
	}
	return buf.Bytes(), webpContentType, nil
}
