package utils

import (
	"errors"
	"time"

	"complyhub-backend/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims identifies an internal caller on service-to-service requests
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

func serviceSecret() []byte {
	return []byte(config.GetConfig().ServiceJWTSecret)
}

// GenerateServiceToken mints a short-lived HS256 token for internal API calls
func GenerateServiceToken(serviceName string) (string, error) {
	ttl := time.Duration(config.GetConfig().GetServiceTokenTTL()) * time.Minute

	claims := ServiceClaims{
		Service: serviceName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(serviceSecret())
}

// ValidateServiceToken validates an internal service token
func ValidateServiceToken(tokenString string) (*ServiceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ServiceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return serviceSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ServiceClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid service token")
}
