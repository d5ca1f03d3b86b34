package imgproc

import (
	"bytes"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/pkg/errors"

	// Register the webp decoder so webp source logos can be re-encoded.
	_ "golang.org/x/image/webp"

	"github.com/vfat-io/vfat-token-lists/gerror"
)

// JPEG and lossy webp outputs are encoded at this quality.
const encodeQuality = 92

// Normalize decodes raw image bytes, resizes the image to fit within a
// size x size square preserving aspect ratio, letterboxes it on a
// transparent canvas and re-encodes it in the requested format
// (png, jpeg/jpg or webp).
func Normalize(data []byte, size int, format string) ([]byte, error) {
	if size <= 0 {
		return nil, gerror.ErrInvalidSize
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	canvas := imaging.New(size, size, color.NRGBA{})
	combined := imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	if err := encode(&buf, combined, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return imaging.Encode(buf, img, imaging.PNG)
	case "jpeg", "jpg":
		return imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(encodeQuality))
	case "webp":
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, encodeQuality)
		if err != nil {
			return errors.Wrap(err, "webp encoder options")
		}
		return webp.Encode(buf, img, opts)
	default:
		return errors.Wrapf(gerror.ErrInvalidFormat, "%q", format)
	}
}

// Ext returns the file extension used for logo assets of the given
// format. jpeg maps to jpg, every other format maps to itself.
func Ext(format string) string {
	format = strings.ToLower(format)
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// ValidFormat reports whether format is one of the supported logo
// output formats.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "png", "jpg", "jpeg", "webp":
		return true
	}
	return false
}
