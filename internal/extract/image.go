package extract

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"log/slog"
	"os"

	"github.com/nfnt/resize"
)

// Image extracts text from photos and scans with OCR. Images whose longer
// side exceeds maxDimension are downscaled to a temporary PNG first.
type Image struct {
	ocr          OCR
	maxDimension int
}

// NewImage creates an image extractor. maxDimension <= 0 disables downscaling.
func NewImage(ocr OCR, maxDimension int) *Image {
	return &Image{ocr: ocr, maxDimension: maxDimension}
}

// Extract implements Extractor.
func (i *Image) Extract(ctx context.Context, path string) (string, error) {
	if i.ocr == nil {
		return "", newError(FormatImage, path, ReasonUnavailable, fmt.Errorf("OCR is not configured"))
	}

	target, cleanup, err := i.prepare(path)
	if err != nil {
		return "", newError(FormatImage, path, ReasonDecode, err)
	}
	defer cleanup()

	text, err := i.ocr.Recognize(ctx, target)
	if err != nil {
		return "", newError(FormatImage, path, ReasonOCR, err)
	}
	return text, nil
}

// prepare returns the file OCR should read and a cleanup func for any temporary copy.
func (i *Image) prepare(path string) (string, func(), error) {
	noop := func() {}
	if i.maxDimension <= 0 {
		return path, noop, nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the scanned tree
	if err != nil {
		return "", noop, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		// Leave formats Go cannot decode to the OCR engine.
		slog.Debug("Skipping image downscale", "path", path, "error", err)
		return path, noop, nil
	}
	if cfg.Width <= i.maxDimension && cfg.Height <= i.maxDimension {
		return path, noop, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return "", noop, err
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return "", noop, err
	}

	width, height := uint(i.maxDimension), uint(0)
	if cfg.Height > cfg.Width {
		width, height = 0, uint(i.maxDimension)
	}
	resized := resize.Resize(width, height, img, resize.Lanczos3)

	tmp, err := os.CreateTemp("", "certsort-ocr-*.png")
	if err != nil {
		return "", noop, err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if err := png.Encode(tmp, resized); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", noop, fmt.Errorf("failed to encode downscaled image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", noop, err
	}

	slog.Debug("Downscaled image for OCR",
		"path", path,
		"width", cfg.Width,
		"height", cfg.Height,
		"max", i.maxDimension)

	return tmp.Name(), cleanup, nil
}
