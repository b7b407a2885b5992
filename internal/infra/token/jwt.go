package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"restaurant/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// What the middleware needs from a verified session token.
type Claims struct {
	UserID       int64
	Role         model.Role
	TokenVersion int
}

type sessionClaims struct {
	Role         string `json:"role"`
	TokenVersion int    `json:"tv"`
	jwt.RegisteredClaims
}

// HS256 issuer and verifier for the session token.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

func (j *JWT) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(j.ttl)

	claims := sessionClaims{
		Role:         string(role),
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWT) Parse(raw string) (Claims, error) {
	var sc sessionClaims
	tok, err := jwt.ParseWithClaims(raw, &sc, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(sc.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, ErrInvalidToken
	}
	role := model.Role(sc.Role)
	if !role.Valid() || sc.TokenVersion < 0 {
		return Claims{}, ErrInvalidToken
	}
	// exp is mandatory
	if sc.ExpiresAt == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: userID, Role: role, TokenVersion: sc.TokenVersion}, nil
}
