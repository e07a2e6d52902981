package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/clock"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Verifier turns a bearer credential into a verified identity.
// Implementations must be side-effect free.
type Verifier interface {
	Verify(ctx context.Context, token string) (model.Identity, error)
}

// Config holds token settings shared by the verifier and the signer
type Config struct {
	Secret   []byte
	Issuer   string // optional; enforced when set
	TokenTTL time.Duration
	Leeway   time.Duration
}

// DefaultConfig returns defaults for local development
func DefaultConfig() Config {
	return Config{
		Secret:   []byte("drawsyn-dev-secret"),
		Issuer:   "drawsyn",
		TokenTTL: 24 * time.Hour,
		Leeway:   30 * time.Second,
	}
}

// Claims are the token claims the identity provider issues
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 tokens
type JWTVerifier struct {
	cfg   Config
	clock clock.Clock
}

// NewJWTVerifier creates a verifier for the given config
func NewJWTVerifier(cfg Config, clock clock.Clock) *JWTVerifier {
	return &JWTVerifier{cfg: cfg, clock: clock}
}

var _ Verifier = (*JWTVerifier)(nil)

// Verify validates the token and returns the identity it carries
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (model.Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return model.Identity{}, fmt.Errorf("%w: missing token", model.ErrAuthRequired)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithLeeway(v.cfg.Leeway),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrAuthRequired, err)
	}
	if !token.Valid || claims.Subject == "" {
		return model.Identity{}, fmt.Errorf("%w: token has no subject", model.ErrAuthRequired)
	}

	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = claims.Subject
	}

	return model.Identity{
		UserID:      model.UserID(claims.Subject),
		DisplayName: name,
	}, nil
}

// Signer mints tokens the JWTVerifier accepts. Used by tooling and tests.
type Signer struct {
	cfg   Config
	clock clock.Clock
}

// NewSigner creates a token signer
func NewSigner(cfg Config, clock clock.Clock) *Signer {
	return &Signer{cfg: cfg, clock: clock}
}

// Sign returns a signed token for the user
func (s *Signer) Sign(userID model.UserID, displayName string) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		Name: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(userID),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}
