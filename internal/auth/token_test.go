// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenSecret = "0123456789abcdef0123456789abcdef"

func TestTokenCodec_RoundTrip(t *testing.T) {
	c := NewTokenCodec(testTokenSecret, time.Hour)

	raw, expires, err := c.Sign(Session{UserID: 42, IsAdmin: true})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	s, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, Session{UserID: 42, IsAdmin: true}, s)
}

func TestTokenCodec_NonAdmin(t *testing.T) {
	c := NewTokenCodec(testTokenSecret, time.Hour)
	raw, _, err := c.Sign(Session{UserID: 7})
	require.NoError(t, err)

	s, err := c.Decode(raw)
	require.NoError(t, err)
	assert.False(t, s.IsAdmin)
}

func TestTokenCodec_Rejects(t *testing.T) {
	c := NewTokenCodec(testTokenSecret, time.Hour)
	raw, _, err := c.Sign(Session{UserID: 1, IsAdmin: true})
	require.NoError(t, err)

	other := NewTokenCodec("ffffffffffffffffffffffffffffffff", time.Hour)

	expired := NewTokenCodec(testTokenSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Sign(Session{UserID: 1, IsAdmin: true})
	require.NoError(t, err)

	tests := []struct {
		name  string
		codec *TokenCodec
		raw   string
	}{
		{"empty", c, ""},
		{"garbage", c, "not-a-token"},
		{"wrong secret", other, raw},
		{"expired", c, old},
		{"tampered", c, raw + "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
