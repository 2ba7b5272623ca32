// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir, "")

	url, err := s.Put(context.Background(), "2026/10/a b.png", "image/png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/2026/10/a%20b.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "2026", "10", "a b.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	require.NoError(t, s.Delete(context.Background(), "2026/10/a b.png"))
	_, err = os.Stat(filepath.Join(dir, "2026", "10", "a b.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, s.Delete(context.Background(), "2026/10/a b.png"))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/media")
	_, err := s.Put(context.Background(), "../escape.png", "image/png", []byte("x"))
	assert.Error(t, err)
}

type fakeS3 struct {
	puts    map[string][]byte
	deleted []string
	fail    bool
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail {
		return nil, errors.New("boom")
	}
	b, _ := io.ReadAll(in.Body)
	f.puts[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreURLs(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{"aws", S3Config{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com/k.png"},
		{"endpoint", S3Config{Bucket: "b", Endpoint: "http://minio:9000/"}, "http://minio:9000/b/k.png"},
		{"public", S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com/k.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeS3{puts: map[string][]byte{}}
			s := newS3Store(f, tt.cfg)
			url, err := s.Put(context.Background(), "k.png", "image/png", []byte("x"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, url)
			assert.Equal(t, []byte("x"), f.puts["k.png"])
		})
	}
}

func TestS3StoreErrors(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.Error(t, err)

	s := newS3Store(&fakeS3{fail: true}, S3Config{Bucket: "b", Region: "us-east-1"})
	_, err = s.Put(context.Background(), "k", "image/png", nil)
	assert.Error(t, err)
}
