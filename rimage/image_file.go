package rimage

import (
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// SavePNG writes the image to the given path, replacing any existing file.
func SavePNG(path string, img image.Image) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %q", path)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return png.Encode(f, img)
}
