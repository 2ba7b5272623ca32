// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or shape checks.
var ErrInvalidToken = errors.New("invalid session token")

const tokenIssuer = "nxtech-site"

// Session is the per-request admin capability carried by a token.
type Session struct {
	UserID  int64
	IsAdmin bool
}

type claims struct {
	Admin bool `json:"adm"`
	jwtlib.RegisteredClaims
}

// TokenCodec signs and decodes HS256 session tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec keyed by secret issuing tokens valid for ttl.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Sign issues a token for s, returning it with its expiry.
func (c *TokenCodec) Sign(s Session) (string, time.Time, error) {
	now := c.now()
	expires := now.Add(c.ttl)
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims{
		Admin: s.IsAdmin,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.FormatInt(s.UserID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expires),
		},
	})
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expires, nil
}

// Decode validates raw and returns the session it carries.
func (c *TokenCodec) Decode(raw string) (Session, error) {
	if raw == "" {
		return Session{}, ErrInvalidToken
	}

	var cl claims
	tok, err := jwtlib.ParseWithClaims(raw, &cl, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwtlib.WithIssuer(tokenIssuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return Session{}, ErrInvalidToken
	}

	uid, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil || uid <= 0 {
		return Session{}, ErrInvalidToken
	}
	return Session{UserID: uid, IsAdmin: cl.Admin}, nil
}
