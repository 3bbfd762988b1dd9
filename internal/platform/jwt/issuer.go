// Package jwtmw provides JWT issuance, verification and the related Gin middleware.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification errors returned by VerifyAuthToken and VerifyResetToken.
// Callers that do not care about the distinction can treat any non-nil
// error as "invalid".
var (
	// ErrTokenExpired indicates that the token signature was valid but the
	// token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidSignature indicates that the token is malformed, uses an
	// unexpected algorithm, or its signature does not verify.
	ErrInvalidSignature = errors.New("invalid token signature")
)

// ResetClaims are the claims embedded in a password-reset token.
// The nonce binds the token to a single reset request so that tokens
// cannot be guessed or replayed.
type ResetClaims struct {
	Email string `json:"email"`
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies the two token kinds used by the auth feature:
// short-lived bearer tokens for authenticated access, and single-use
// password-reset tokens. All tokens are HS256 with one process-wide secret.
type Issuer struct {
	secret   []byte
	authTTL  time.Duration
	resetTTL time.Duration
}

// NewIssuer creates a new Issuer with the provided secret and token lifetimes.
func NewIssuer(secret string, authTTL, resetTTL time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		authTTL:  authTTL,
		resetTTL: resetTTL,
	}
}

// IssueAuthToken creates a signed bearer token binding the user's identity claims.
func (i *Issuer) IssueAuthToken(userID uint, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(i.authTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// IssueResetToken creates a signed password-reset token binding the email
// and a random nonce. It also returns the token's expiry so callers can
// persist it alongside the token.
func (i *Issuer) IssueResetToken(email, nonce string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.resetTTL)
	claims := ResetClaims{
		Email: email,
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign reset token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyAuthToken validates a bearer token and returns the user ID and
// username it was issued for. It returns ErrTokenExpired or
// ErrInvalidSignature on failure.
func (i *Issuer) VerifyAuthToken(tokenStr string) (uint, string, error) {
	token, err := jwt.Parse(tokenStr, i.keyFunc)
	if err != nil || !token.Valid {
		return 0, "", classify(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidSignature
	}

	// JWT numbers are decoded as float64
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", ErrInvalidSignature
	}
	username, _ := claims["username"].(string)

	return uint(sub), username, nil
}

// VerifyResetToken validates a password-reset token and returns the email
// and nonce it binds. It returns ErrTokenExpired or ErrInvalidSignature on
// failure.
func (i *Issuer) VerifyResetToken(tokenStr string) (string, string, error) {
	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, i.keyFunc)
	if err != nil || !token.Valid {
		return "", "", classify(err)
	}

	return claims.Email, claims.Nonce, nil
}

// keyFunc restricts verification to HMAC signatures with the issuer's secret.
func (i *Issuer) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return i.secret, nil
}

// classify maps a jwt parse error to one of the package sentinels.
func classify(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrInvalidSignature
}
