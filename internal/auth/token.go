package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// Verification failures are reported as distinct kinds so the guard can log
// which check failed while callers see a uniform access-denied message.
var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature mismatch")
)

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager around a process-wide signing key.
// Rotating the key invalidates every outstanding token; there is no grace
// period.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload: subject id, role and email.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user with expiresAt = issuedAt + configured TTL.
func (tm *TokenManager) Issue(user *domain.User) (string, domain.TokenMetadata, error) {
	issuedAt := time.Now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Role:  string(user.Role),
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", domain.TokenMetadata{}, err
	}
	meta := domain.TokenMetadata{
		SubjectID: user.ID,
		Role:      user.Role,
		Email:     user.Email,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	return signed, meta, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// Expiry is an exact boundary check with no leeway window.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignature
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
