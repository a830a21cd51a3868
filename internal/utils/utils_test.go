// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	tests := []struct {
		name   string
		token  string
		wantOK bool
	}{
		{name: "jwt with exp", token: signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}), wantOK: true},
		{name: "jwt without exp", token: signedToken(t, jwt.RegisteredClaims{Subject: "u1"}), wantOK: false},
		{name: "opaque token", token: "not-a-jwt", wantOK: false},
		{name: "empty", token: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TokenExpiry(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(exp))
			}
		})
	}
}

func TestTokenExpiry_ExpiredTokenStillReadable(t *testing.T) {
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	got, ok := TokenExpiry(signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(past)}))
	require.True(t, ok)
	assert.True(t, got.Equal(past))
}

func TestRequestIDContext(t *testing.T) {
	_, ok := GetRequestIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetRequestIDFromContext(WithRequestID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := GetRequestIDFromContext(WithRequestID(context.Background(), "req-1"))
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
	assert.Equal(t, "requestID", RequestIDCtxKey.String())
}

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.Generate(), g.Generate()

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, a, b)
}
