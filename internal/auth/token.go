package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionDuration is how long an issued session token stays valid.
	SessionDuration = 2 * time.Hour
	tokenIssuer     = "app-tracker"
)

var (
	ErrMissingSecret = errors.New("token signing secret is not configured")
	ErrNoToken       = errors.New("no session token")
	ErrTokenExpired  = errors.New("session token expired")
	ErrTokenInvalid  = errors.New("session token invalid")
)

// Claims is the identity carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	UserID   string `json:"userId"`
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    SessionDuration,
		now:    time.Now,
	}
}

// Configured reports whether a signing secret is set.
func (t *TokenService) Configured() bool {
	return len(t.secret) > 0
}

// Issue signs a token for the given user.
func (t *TokenService) Issue(username, userID string) (string, error) {
	if !t.Configured() {
		return "", ErrMissingSecret
	}
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Username: username,
		UserID:   userID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and returns its claims. The returned error is
// one of ErrMissingSecret, ErrNoToken, ErrTokenExpired or ErrTokenInvalid.
func (t *TokenService) Verify(tokenString string) (*Claims, error) {
	if !t.Configured() {
		return nil, ErrMissingSecret
	}
	if tokenString == "" {
		return nil, ErrNoToken
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}
	return claims, nil
}
