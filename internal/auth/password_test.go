// Copyright (c) 2026 NxTech
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Errorf("hash = %q, want argon2id prefix", hash)
	}

	ok, err := CheckPassword("correct horse", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !ok {
		t.Error("correct password was rejected")
	}

	ok, err = CheckPassword("wrong horse", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if ok {
		t.Error("wrong password was accepted")
	}
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	h1, _ := HashPassword("same")
	h2, _ := HashPassword("same")
	if h1 == h2 {
		t.Error("two hashes of the same password are identical")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	tests := []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
	}
	for _, h := range tests {
		if _, err := CheckPassword("x", h); err == nil {
			t.Errorf("CheckPassword(%q) error = nil, want error", h)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err != ErrPasswordTooShort {
		t.Errorf("ValidatePassword(short) = %v, want %v", err, ErrPasswordTooShort)
	}
	if err := ValidatePassword("long-enough"); err != nil {
		t.Errorf("ValidatePassword(long-enough) = %v, want nil", err)
	}
}
