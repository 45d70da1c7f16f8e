package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/orgboard/orgboard-api/internal/core/domain"
	"github.com/orgboard/orgboard-api/internal/core/ports"
)

const (
	// DefaultTokenTTL is the session token lifetime when none is configured.
	DefaultTokenTTL = 24 * time.Hour

	// expirySkew absorbs clock drift between issuer and verifier.
	expirySkew = 30 * time.Second

	// msEpochThreshold: an exp claim above this is a millisecond timestamp
	// from a foreign issuer and gets normalized to seconds.
	msEpochThreshold = int64(1e12)
)

type tokenClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and inspects HS256-signed session tokens carrying
// {sub, email, role, exp}. It holds no token state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given user with Exp = now + TTL.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies the signature and claim shape, returning nil on any failure.
// Expiry is deliberately not enforced here; IsExpired owns the time check so
// rehydration can distinguish an expired session from a tampered one.
func (s *TokenService) Parse(token string) *ports.Claims {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		return nil
	}

	var exp int64
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Unix()
		if exp > msEpochThreshold {
			exp /= 1000
		}
	}
	return &ports.Claims{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
		Exp:   exp,
	}
}

// IsExpired reports whether the token's expiry has passed, allowing expirySkew
// of clock drift. Tokens that do not parse or carry no expiry claim are
// treated as non-expiring; Parse is the gate for malformed input.
func (s *TokenService) IsExpired(token string) bool {
	claims := s.Parse(token)
	if claims == nil || claims.Exp == 0 {
		return false
	}
	return s.now().Unix() >= claims.Exp-int64(expirySkew/time.Second)
}
