package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasklog/internal/models"
)

// SessionClaims embeds the principal in a self-contained signed token;
// validity is entirely signature plus the registered expiry, nothing is
// stored server-side.
type SessionClaims struct {
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func IssueSessionToken(secret string, principal models.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Username: principal.Username,
		Role:     principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies signature and expiry and recovers the embedded
// principal. Callers that only care about "session or no session" should
// treat any error as the latter.
func ParseSessionToken(tokenStr string, secret string) (*models.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("malformed session claims")
	}

	return &models.Principal{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
