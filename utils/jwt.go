package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the shop the admin session is bound to.
type Claims struct {
	Shop string `json:"shop"`
	jwt.RegisteredClaims
}

// GenerateToken สร้าง JWT สำหรับร้าน
func GenerateToken(shop, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Shop: shop,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shop,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Shop == "" {
		return nil, errors.New("token has no shop")
	}
	return claims, nil
}
