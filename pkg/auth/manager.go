package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims extends standard JWT claims with the Pattaya1 identity fields.
type Claims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Role   string `json:"role"` // "admin", "business" or "user"
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateToken(id, email, role string) (string, error)
	VerifyToken(token string) (*Claims, error)
}

type jwtManager struct {
	secretKey []byte
	issuer    string
}

func NewJWTManager(secret string) TokenManager {
	return &jwtManager{
		secretKey: []byte(secret),
		issuer:    "pattaya1",
	}
}

func (m *jwtManager) GenerateToken(id, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: id,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: id,
			Issuer:  m.issuer,
			// Sessions live for 7 days; there is no server-side revocation.
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour * 24 * 7)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

func (m *jwtManager) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})

	if err != nil {
		// Callers present the same message for expired and malformed tokens.
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
