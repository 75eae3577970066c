package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret means the service was started without a signing secret.
	ErrMissingSecret = errors.New("jwt secret not configured")
	// ErrMalformedHeader means the Authorization header is absent or not Bearer.
	ErrMalformedHeader = errors.New("invalid token format")
	// ErrTokenExpired means the token's exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken covers every other verification failure.
	ErrInvalidToken = errors.New("invalid token")
)

// Authenticator validates HS256 bearer tokens carrying a userId claim.
type Authenticator struct {
	secret []byte
}

func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// ParseBearer extracts and verifies the token from an Authorization header
// value and returns the userId claim.
func (a *Authenticator) ParseBearer(header string) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrMissingSecret
	}
	if !strings.HasPrefix(header, "Bearer") {
		return "", ErrMalformedHeader
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if raw == "" {
		return "", ErrMalformedHeader
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// Sign issues a token for userID. Exposed for tests and seed tooling; the
// service itself never issues tokens.
func (a *Authenticator) Sign(userID string) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrMissingSecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
	})
	return token.SignedString(a.secret)
}
