package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "blackfish"

type SessionClaims struct {
	VisitorID string `json:"vid"`
	jwt.RegisteredClaims
}

// SessionSigner issues and checks the visitor cookie value.
type SessionSigner struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewSessionSigner(secret string, ttl time.Duration) *SessionSigner {
	return &SessionSigner{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (s *SessionSigner) Generate(visitorID string) (string, error) {
	now := s.Now()
	claims := &SessionClaims{
		VisitorID: visitorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

func (s *SessionSigner) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.Now),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired session")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.VisitorID == "" {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}
