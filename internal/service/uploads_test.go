// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtech/nxtech-site/internal/imaging"
	"github.com/nxtech/nxtech-site/internal/storage"
	"github.com/nxtech/nxtech-site/internal/testutil"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadSave(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(storage.NewLocalStore(dir, "/uploads"), imaging.NewProcessor(imaging.Options{}), 1<<20, testutil.TestLogger())

	up, err := svc.Save(context.Background(), bytes.NewReader(pngBytes(t, 800, 600)), "Team Photo.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(up.Key, "-team-photo.png"), up.Key)
	assert.True(t, strings.HasSuffix(up.ThumbnailURL, "-team-photo-thumb.png"), up.ThumbnailURL)
	assert.Equal(t, 800, up.Width)
	assert.Equal(t, imaging.MimeTypePNG, up.MimeType)

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(up.Key)))
	assert.NoError(t, err)
}

func TestUploadRejects(t *testing.T) {
	svc := NewUploadService(storage.NewLocalStore(t.TempDir(), ""), imaging.NewProcessor(imaging.Options{}), 64, testutil.TestLogger())
	ctx := context.Background()

	_, err := svc.Save(ctx, bytes.NewReader(pngBytes(t, 200, 200)), "big.png")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = svc.Save(ctx, strings.NewReader("hello"), "notes.txt")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "file", verr.Field)

	_, err = svc.Save(ctx, strings.NewReader("hello"), "..")
	require.ErrorAs(t, err, &verr)
}
