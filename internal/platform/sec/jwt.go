// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

// Package sec verifies the bearer tokens issued by the external identity
// provider.
//
// # Architecture
//
// The studio never issues credentials itself. Sign-in happens in the SPA
// against the identity provider, which hands out RS256-signed ID tokens. This
// package checks signature, issuer, audience and expiry and exposes the
// resulting [AuthClaims] to the middleware.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload of a verified identity token.
type AuthClaims struct {
	jwt.RegisteredClaims

	// UserID is the provider-assigned account id. Falls back to "sub".
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	// Role is an optional custom claim; see [AuthClaims.EffectiveRole].
	Role string `json:"role,omitempty"`
}

// TokenVerifier validates RS256 identity tokens against a single public key.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

// NewTokenVerifier creates a verifier. Empty issuer or audience disables the
// corresponding check.
func NewTokenVerifier(publicKey *rsa.PublicKey, issuer, audience string) *TokenVerifier {
	return &TokenVerifier{
		publicKey: publicKey,
		issuer:    issuer,
		audience:  audience,
	}
}

// LoadTokenVerifier reads a PEM-encoded RSA public key from disk and builds a
// [TokenVerifier] around it.
func LoadTokenVerifier(publicKeyPath, issuer, audience string) (*TokenVerifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewTokenVerifier(publicKey, issuer, audience), nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*AuthClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if verifier.issuer != "" {
		options = append(options, jwt.WithIssuer(verifier.issuer))
	}
	if verifier.audience != "" {
		options = append(options, jwt.WithAudience(verifier.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		return verifier.publicKey, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("sec: token carries no subject")
	}

	return claims, nil
}
