// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the "exp" claim of a JWT without verifying its signature.
// The console cannot verify tokens (the signing key belongs to the server);
// the claim is only used to drop a session locally once it is certainly dead.
//
// ok is false when the token is not a JWT or carries no expiry.
func TokenExpiry(token string) (expiresAt time.Time, ok bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
