// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalises uploaded images: EXIF orientation is applied,
// oversized originals are scaled down and a cropped thumbnail is produced.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Mime types accepted for upload.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// ErrUnsupportedFormat is returned for anything that is not JPEG, PNG, GIF or WebP.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Options controls output sizes.
type Options struct {
	MaxWidth    int // originals wider than this are scaled down
	MaxHeight   int
	ThumbWidth  int
	ThumbHeight int
	Quality     int // JPEG quality
}

// DefaultOptions suits cover images and portfolio shots.
var DefaultOptions = Options{
	MaxWidth:    2000,
	MaxHeight:   2000,
	ThumbWidth:  480,
	ThumbHeight: 320,
	Quality:     85,
}

// Encoded is one rendered image.
type Encoded struct {
	Data     []byte
	MimeType string
	Ext      string
	Width    int
	Height   int
}

// Result holds the normalised original and its thumbnail.
type Result struct {
	Original  Encoded
	Thumbnail Encoded
}

// Processor handles image processing using pure Go libraries.
type Processor struct {
	opts Options
}

// NewProcessor creates a new image processor. Zero option fields take
// their DefaultOptions value.
func NewProcessor(opts Options) *Processor {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultOptions.MaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = DefaultOptions.MaxHeight
	}
	if opts.ThumbWidth <= 0 {
		opts.ThumbWidth = DefaultOptions.ThumbWidth
	}
	if opts.ThumbHeight <= 0 {
		opts.ThumbHeight = DefaultOptions.ThumbHeight
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultOptions.Quality
	}
	return &Processor{opts: opts}
}

// Process decodes r, applies EXIF orientation and returns the original
// (scaled down to fit the configured bounds) plus a center-cropped thumbnail.
func (p *Processor) Process(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := DetectFormat(data)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	b := img.Bounds()
	if b.Dx() > p.opts.MaxWidth || b.Dy() > p.opts.MaxHeight {
		img = imaging.Fit(img, p.opts.MaxWidth, p.opts.MaxHeight, imaging.Lanczos)
	}

	original, err := p.encode(img, format)
	if err != nil {
		return nil, fmt.Errorf("encoding original: %w", err)
	}

	thumb := imaging.Fill(img, p.opts.ThumbWidth, p.opts.ThumbHeight, imaging.Center, imaging.Lanczos)
	thumbnail, err := p.encode(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}

	return &Result{Original: original, Thumbnail: thumbnail}, nil
}

// encode writes img in format. WebP has no pure Go encoder so it becomes JPEG.
func (p *Processor) encode(img image.Image, format string) (Encoded, error) {
	var buf bytes.Buffer
	out := Encoded{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}

	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
		out.MimeType, out.Ext = MimeTypePNG, ".png"
	case "gif":
		err = gif.Encode(&buf, img, nil)
		out.MimeType, out.Ext = MimeTypeGIF, ".gif"
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.opts.Quality})
		out.MimeType, out.Ext = MimeTypeJPEG, ".jpg"
	}
	if err != nil {
		return out, err
	}
	out.Data = buf.Bytes()
	return out, nil
}

// DetectFormat sniffs the image format from raw bytes. TIFF is rejected
// (CVE-2023-36308 in disintegration/imaging).
func DetectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// IsImage reports whether mimeType is accepted for upload.
func IsImage(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	}
	return false
}

// readExifOrientation returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation maps EXIF orientation values 2-8 onto flips and rotations.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
