package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const magicLinkAudience = "magic-link"

// MagicLinkClaims identify a one-time sign-in link. The JWT ID is the nonce
// that gets burned when the link is used.
type MagicLinkClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type MagicLinkSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewMagicLinkSigner(secret string, ttl time.Duration) *MagicLinkSigner {
	return &MagicLinkSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *MagicLinkSigner) TTL() time.Duration {
	return s.ttl
}

// Sign issues a link token for email that expires ttl after now.
func (s *MagicLinkSigner) Sign(email string, now time.Time) (string, error) {
	claims := MagicLinkClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Audience:  jwt.ClaimStrings{magicLinkAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign magic link: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature, audience and expiry of a link token as of now.
func (s *MagicLinkSigner) Parse(tokenString string, now time.Time) (*MagicLinkClaims, error) {
	claims := &MagicLinkClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(magicLinkAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Email == "" || claims.ID == "" {
		return nil, errors.New("invalid magic link")
	}

	return claims, nil
}
