// internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
	now          func() time.Time
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
		now:          time.Now,
	}
}

// ExpiryPeriod is how long an issued token stays valid.
func (tm *TokenManager) ExpiryPeriod() time.Duration {
	return tm.expiryPeriod
}

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	OrgID  string `json:"orgId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) Generate(p *Principal) (string, error) {
	now := tm.now()
	claims := Claims{
		UserID: p.UserID.String(),
		Email:  p.Email,
		Name:   p.Name,
		OrgID:  p.OrgID.String(),
		Role:   string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// Verify returns the principal carried by a valid token and nil for any
// failure. Callers cannot tell a malformed token from an expired or forged one.
func (tm *TokenManager) Verify(tokenString string) *Principal {
	claims, err := tm.Validate(tokenString)
	if err != nil {
		return nil
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	orgID, err := uuid.Parse(claims.OrgID)
	if err != nil {
		return nil
	}

	role := model.Role(claims.Role)
	if role != model.RoleAdmin && role != model.RoleMember {
		return nil
	}

	return &Principal{
		Kind:   KindUser,
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		OrgID:  orgID,
		Role:   role,
	}
}
