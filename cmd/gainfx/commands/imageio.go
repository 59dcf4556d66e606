package commands

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var errUnknownFormat = errors.New("unknown image format")

type encodeFunc func(w io.Writer, m image.Image) error

// encoders are keyed by lower-case file extension.
var encoders = map[string]encodeFunc{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, m image.Image) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
}

// 16-bit images stay 16-bit in TIFF.
func encodeTIFF(w io.Writer, m image.Image) error {
	return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
}

// decodeFile reads any image whose format is registered: PNG, JPEG, BMP or TIFF.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// encodeFile writes img in the format named by the extension of path.
func encodeFile(path string, img image.Image) (err error) {
	enc, ok := encoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := enc(w, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return w.Flush()
}
