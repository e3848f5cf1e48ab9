package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/errors"
)

// Identity is what the external identity collaborator supplies about the
// acting caller. The core never authenticates users or mutates profiles;
// it only consumes this pair.
type Identity struct {
	UserID      domain.UserID
	DisplayName string
}

// IdentityClaims is the data stored inside an identity token.
type IdentityClaims struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// TokenProvider validates HS256 identity tokens issued by the external
// identity service. The signing key is shared configuration, injected at
// construction rather than hardcoded.
type TokenProvider struct {
	key []byte
	ttl time.Duration
}

func NewTokenProvider(key []byte, ttl time.Duration) TokenProvider {
	return TokenProvider{key: key, ttl: ttl}
}

// Issue creates a signed token for a user. Exists for tests and tooling;
// in a deployment the identity service signs tokens with the same key.
func (p TokenProvider) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := &IdentityClaims{
		UserID:      string(id.UserID),
		DisplayName: id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "partyup",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.key)
}

// Resolve parses and validates a token string into an Identity.
func (p TokenProvider) Resolve(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return p.key, nil
	})
	if err != nil {
		return Identity{}, errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return Identity{}, errors.ErrInvalidToken
	}

	return Identity{
		UserID:      domain.UserID(claims.UserID),
		DisplayName: claims.DisplayName,
	}, nil
}
