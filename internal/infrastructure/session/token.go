// Package session encodes login state into a signed, client-held token.
//
// There is no server-side session table. Clearing the cookie only removes the
// client's copy: a leaked token stays valid until it expires or until every
// key that could verify it is removed from the key list.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// DefaultTTL is the fixed lifetime of an issued session.
const DefaultTTL = time.Hour

const issuer = "bandhub"

var (
	ErrNoKeys       = errors.New("session: at least one signing key is required")
	ErrInvalidToken = errors.New("session: invalid token")
)

type claims struct {
	IsLoggedIn bool  `json:"isLoggedIn"`
	UserID     int64 `json:"userID"`
	jwt.RegisteredClaims
}

// Codec signs tokens with the first key and accepts any listed key, so keys
// can be rotated by prepending a new one.
type Codec struct {
	keys [][]byte
	ttl  time.Duration
	now  func() time.Time
}

// NewCodec builds a Codec. ttl <= 0 means DefaultTTL.
func NewCodec(keys []string, ttl time.Duration) (*Codec, error) {
	c := &Codec{ttl: ttl, now: time.Now}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	for _, k := range keys {
		if k == "" {
			continue
		}
		c.keys = append(c.keys, []byte(k))
	}
	if len(c.keys) == 0 {
		return nil, ErrNoKeys
	}
	return c, nil
}

// TTL reports the session lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Encode issues a token for s. IssuedAt and ExpiresAt are set by the codec.
func (c *Codec) Encode(s domain.Session) (string, domain.Session, error) {
	now := c.now().UTC().Truncate(time.Second)
	s.IssuedAt = now
	s.ExpiresAt = now.Add(c.ttl)

	cl := claims{
		IsLoggedIn: s.IsLoggedIn,
		UserID:     s.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(s.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.keys[0])
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("session: sign: %w", err)
	}
	return signed, s, nil
}

// Decode verifies the signature and expiry of token.
func (c *Codec) Decode(token string) (*domain.Session, error) {
	keySet := jwt.VerificationKeySet{}
	for _, k := range c.keys {
		keySet.Keys = append(keySet.Keys, k)
	}

	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(*jwt.Token) (interface{}, error) {
		return keySet, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	s := &domain.Session{
		IsLoggedIn: cl.IsLoggedIn,
		UserID:     cl.UserID,
		ExpiresAt:  cl.ExpiresAt.Time,
	}
	if cl.IssuedAt != nil {
		s.IssuedAt = cl.IssuedAt.Time
	}
	return s, nil
}
