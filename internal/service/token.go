package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"labdic-inventory/internal/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var ErrTokenRevoked = errors.New("token revoked")

var timeNow = time.Now

// Claims is the JWT payload. Subject carries the username.
type Claims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies bearer tokens. Tokens stay stateless, but
// Verify consults a redis revocation set so that deleting or deactivating
// an account invalidates tokens issued before the revocation.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
	Cache  cache.Cache
}

func revocationKey(username string) string {
	return "revoked:" + username
}

// Issue signs an HS256 token with subject = username and the configured TTL.
func (t *Tokens) Issue(username string, isAdmin bool) (string, error) {
	if len(t.Secret) == 0 {
		return "", fmt.Errorf("token secret not configured")
	}
	now := timeNow()
	claims := Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

// Verify parses and checks the signature and expiry, then rejects tokens
// issued at or before the subject's revocation mark, if one exists.
func (t *Tokens) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if err := t.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *Tokens) checkRevoked(ctx context.Context, claims *Claims) error {
	if t.Cache == nil {
		return nil
	}
	val, err := t.Cache.Get(ctx, revocationKey(claims.Subject)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	revokedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fmt.Errorf("bad revocation mark: %w", err)
	}
	if claims.IssuedAt != nil && !claims.IssuedAt.After(time.Unix(revokedAt, 0)) {
		return ErrTokenRevoked
	}
	return nil
}

// Revoke marks every token of the subject issued up to now as invalid.
// The mark expires with the longest-lived token it could affect.
func (t *Tokens) Revoke(ctx context.Context, username string) error {
	if t.Cache == nil {
		return nil
	}
	return t.Cache.Set(ctx, revocationKey(username), strconv.FormatInt(timeNow().Unix(), 10), t.TTL).Err()
}
