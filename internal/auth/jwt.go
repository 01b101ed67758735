// Package auth holds token issuing/verification and password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/models"
)

// Claims is the token payload issued at signup and login.
type Claims struct {
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HMAC tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *Manager) GenerateToken(userID, email string, role models.Role) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperrors.Upstream(err, "signing token")
	}
	return signed, nil
}

// VerifyToken parses and validates a token, enforcing the HMAC method.
func (m *Manager) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Unauthorized("unexpected signing method %s", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token")
	}
	if !token.Valid {
		return nil, apperrors.Unauthorized("invalid token")
	}
	return claims, nil
}
