package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-transform/internal/transform"
)

// ErrEncode is returned when a buffer cannot be encoded or written.
var ErrEncode = errors.New("failed to encode image")

const defaultJPEGQuality = 95

// Save renders buf and writes it to path, choosing the encoder from the file
// extension (jpg, png, gif, tif, bmp).
//
// The destination directory is created if absent. The image is encoded into a
// temporary file in that directory and renamed into place, so path is either
// fully written or left untouched.
func Save(path string, buf *transform.Buffer, opts RenderOptions) error {
	img, err := ToImage(buf, opts)
	if err != nil {
		return err
	}
	return WriteImage(path, img, opts)
}

// WriteImage encodes an already rendered image to path with the same directory
// creation and rename-into-place behavior as Save.
func WriteImage(path string, img image.Image, opts RenderOptions) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrEncode, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = defaultJPEGQuality
	}

	if err := imaging.Encode(tmp, img, format, imaging.JPEGQuality(quality)); err != nil {
		tmp.Close()
		return fmt.Errorf("%w %s: %w", ErrEncode, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrEncode, path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}

// EncodedImage is a rendered buffer encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Channels    int    `json:"channels"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 renders buf and returns it as an inline base64 PNG.
func EncodePNGBase64(buf *transform.Buffer, opts RenderOptions) (*EncodedImage, error) {
	img, err := ToImage(buf, opts)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return &EncodedImage{
		Width:       buf.Width,
		Height:      buf.Height,
		Channels:    buf.Channels,
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}
