package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/harbourview/aptly/internal/domain"
)

// Claims defines the custom claims for the JWT. Apartment is empty for
// service providers and for managers still pending central approval.
type Claims struct {
	UserID    uuid.UUID             `json:"id"`
	Role      domain.Role           `json:"role"`
	Apartment string                `json:"apartmentComplexName,omitempty"`
	Status    domain.ApprovalStatus `json:"status,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT for a resolved identity.
func GenerateToken(id *domain.Identity, secretKey string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    id.ID,
		Role:      id.Role,
		Apartment: id.Apartment,
		Status:    id.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ValidateToken parses and validates a JWT string.
func ValidateToken(tokenString, secretKey string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}
