package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtKey []byte

// SetJWTKey installs the HS256 signing key from the loaded config. A
// package-init env read would run before the .env file is loaded, leaving an
// empty key.
func SetJWTKey(secret string) {
	jwtKey = []byte(secret)
}

type Claims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// CreateToken issues a session token for a verified phone number.
func CreateToken(phone string) (string, error) {
	claims := &Claims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})

	if err != nil || !token.Valid {
		return nil, err
	}

	return claims, nil
}
