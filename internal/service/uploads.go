// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nxtech/nxtech-site/internal/imaging"
	"github.com/nxtech/nxtech-site/internal/storage"
	"github.com/nxtech/nxtech-site/internal/util"
)

// ErrTooLarge is returned when an upload exceeds the size limit.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Upload is what the admin API returns after storing an image.
type Upload struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Key          string `json:"key"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	MimeType     string `json:"mimeType"`
}

// UploadService normalises images and writes them to a storage backend.
type UploadService struct {
	store     storage.Store
	processor *imaging.Processor
	maxBytes  int64
	logger    *slog.Logger
	now       func() time.Time
}

// NewUploadService creates an UploadService.
func NewUploadService(store storage.Store, processor *imaging.Processor, maxBytes int64, logger *slog.Logger) *UploadService {
	return &UploadService{
		store:     store,
		processor: processor,
		maxBytes:  maxBytes,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// MaxBytes returns the size limit.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Save stores the original and its thumbnail under
// YYYY/MM/<uuid>-<name><ext> and YYYY/MM/<uuid>-<name>-thumb<ext>.
func (s *UploadService) Save(ctx context.Context, r io.Reader, filename string) (*Upload, error) {
	name, err := util.SanitizeFilename(filename)
	if err != nil {
		return nil, invalid("file", "invalid filename")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	res, err := s.processor.Process(bytes.NewReader(data))
	if errors.Is(err, imaging.ErrUnsupportedFormat) {
		return nil, invalid("file", "only JPEG, PNG, GIF and WebP images are accepted")
	}
	if err != nil {
		return nil, invalid("file", "could not process image: %v", err)
	}

	base := util.Slugify(strings.TrimSuffix(name, path.Ext(name)))
	if base == "" {
		base = "image"
	}
	now := s.now()
	stem := fmt.Sprintf("%04d/%02d/%s-%s", now.Year(), int(now.Month()), uuid.NewString(), base)

	key := stem + res.Original.Ext
	url, err := s.store.Put(ctx, key, res.Original.MimeType, res.Original.Data)
	if err != nil {
		return nil, err
	}
	thumbURL, err := s.store.Put(ctx, stem+"-thumb"+res.Thumbnail.Ext, res.Thumbnail.MimeType, res.Thumbnail.Data)
	if err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			s.logger.Warn("removing orphaned upload", "key", key, "error", derr)
		}
		return nil, err
	}

	s.logger.Info("image uploaded", "key", key, "backend", s.store.Name(), "bytes", len(res.Original.Data))
	return &Upload{
		URL:          url,
		ThumbnailURL: thumbURL,
		Key:          key,
		Width:        res.Original.Width,
		Height:       res.Original.Height,
		Size:         len(res.Original.Data),
		MimeType:     res.Original.MimeType,
	}, nil
}
