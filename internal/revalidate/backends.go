// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package revalidate

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nxtech/nxtech-site/internal/cache"
)

// PageCacheBackend purges the in-process (or Redis) page cache.
type PageCacheBackend struct {
	pages *cache.PageCache
}

// NewPageCacheBackend wraps a page cache.
func NewPageCacheBackend(pages *cache.PageCache) *PageCacheBackend {
	return &PageCacheBackend{pages: pages}
}

func (b *PageCacheBackend) Name() string { return "page-cache" }

func (b *PageCacheBackend) InvalidatePath(ctx context.Context, path string) error {
	return b.pages.Invalidate(ctx, path)
}

func (b *PageCacheBackend) InvalidatePrefix(ctx context.Context, prefix string) error {
	return b.pages.InvalidatePrefix(ctx, prefix)
}

// Hook request headers.
const (
	HeaderSignature = "X-Revalidate-Signature"
	HeaderRequestID = "X-Revalidate-Request-ID"
	hookUserAgent   = "nxtech-revalidate/1.0"
	maxHookResponse = 4096
)

// HookRequest is the JSON body POSTed to the remote hook.
type HookRequest struct {
	Path   string `json:"path,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	SentAt int64  `json:"sentAt"`
}

// HookBackend forwards invalidations to a remote frontend over HTTP. Bodies
// are signed with HMAC-SHA256 over the shared revalidation secret.
type HookBackend struct {
	url    string
	secret string
	client *http.Client
	now    func() time.Time
}

// NewHookBackend creates a hook backend. A nil client gets a 5s timeout.
func NewHookBackend(url, secret string, client *http.Client) *HookBackend {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HookBackend{url: url, secret: secret, client: client, now: time.Now}
}

func (b *HookBackend) Name() string { return "hook" }

func (b *HookBackend) InvalidatePath(ctx context.Context, path string) error {
	return b.send(ctx, HookRequest{Path: path})
}

func (b *HookBackend) InvalidatePrefix(ctx context.Context, prefix string) error {
	return b.send(ctx, HookRequest{Prefix: prefix})
}

func (b *HookBackend) send(ctx context.Context, body HookRequest) error {
	body.SentAt = b.now().UnixMilli()
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding hook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating hook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", hookUserAgent)
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if b.secret != "" {
		req.Header.Set(HeaderSignature, Sign(payload, b.secret))
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("hook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxHookResponse))
		return fmt.Errorf("hook returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxHookResponse))
	return nil
}

// Sign returns the hex HMAC-SHA256 of payload.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature produced by Sign.
func Verify(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(signature), []byte(Sign(payload, secret)))
}

var (
	_ Backend = (*PageCacheBackend)(nil)
	_ Backend = (*HookBackend)(nil)
)
