package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/cache/port"
)

// Claims is the verified identity extracted from a bearer token.
type Claims struct {
	UserID  string
	Role    string
	TokenID string
}

// tokenClaims is the internal claims type used for JWT parsing.
// The subject user id travels in the "id" claim.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Role   string `json:"role,omitempty"`
}

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrTokenRevoked = errors.New("auth: token revoked")
)

const revokedKeyPrefix = "auth:revoked:"

// Verifier performs stateless HMAC verification of bearer tokens.
// When a cache is wired via WithRevocation, tokens whose jti appears in
// the revocation keyspace are rejected before natural expiry.
type Verifier struct {
	secret  []byte
	revoked port.Cache
	now     func() time.Time
}

// NewVerifier constructs a Verifier over the shared signing secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret, now: time.Now}
}

// NewVerifierFromEnv reads the signing secret from CHAT_JWT_SECRET.
func NewVerifierFromEnv() (*Verifier, error) {
	secret := strings.TrimSpace(os.Getenv("CHAT_JWT_SECRET"))
	if secret == "" {
		return nil, errors.New("auth: CHAT_JWT_SECRET environment variable is not set")
	}
	return NewVerifier([]byte(secret)), nil
}

// WithRevocation enables the session-store revocation check.
func (v *Verifier) WithRevocation(c port.Cache) *Verifier {
	v.revoked = c
	return v
}

// Verify checks signature and expiry and returns the token's claims.
// All parse and validation failures collapse into ErrInvalidToken so the
// caller's close behavior cannot leak which check failed.
func (v *Verifier) Verify(ctx context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, ErrInvalidToken
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}

	if v.revoked != nil && claims.ID != "" {
		_, err := v.revoked.Get(ctx, revokedKeyPrefix+claims.ID)
		switch {
		case err == nil:
			return Claims{}, ErrTokenRevoked
		case errors.Is(err, port.ErrMiss):
			// not revoked
		default:
			return Claims{}, fmt.Errorf("auth: revocation lookup: %w", err)
		}
	}

	return Claims{UserID: claims.UserID, Role: claims.Role, TokenID: claims.ID}, nil
}

// Issuer mints signed tokens for the verifier's counterpart flow
// (login lives in the broader application; this is also what the tests
// and local tooling use to produce credentials).
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer constructs an Issuer. A non-positive ttl defaults to 24h.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the given user.
func (i *Issuer) Issue(userID, role string) (string, error) {
	if userID == "" {
		return "", errors.New("auth: user id is required")
	}
	now := i.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Revoke marks a token id as revoked in the session store until its
// natural expiry would have passed.
func Revoke(ctx context.Context, c port.Cache, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("auth: token id is required")
	}
	return c.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl)
}
