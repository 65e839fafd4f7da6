package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines what is inside the token. DBName is the tenant selector:
// every request reads and writes only the database named here.
type Claims struct {
	VendorID   uint   `json:"vendor_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	DBName     string `json:"db_name"`
	BrandFull  string `json:"brand_full"`
	BrandShort string `json:"brand_short"`
	jwt.RegisteredClaims
}

func jwtKey() []byte {
	if key := os.Getenv("JWT_SECRET"); key != "" {
		return []byte(key)
	}
	// Dev fallback only; set JWT_SECRET in production.
	return []byte("jewelbook_dev_secret")
}

// GenerateToken creates a signed JWT for a vendor session.
func GenerateToken(vendorID uint, username, role, dbName, brandFull, brandShort string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour) // Token lasts 1 day

	claims := &Claims{
		VendorID:   vendorID,
		Username:   username,
		Role:       role,
		DBName:     dbName,
		BrandFull:  brandFull,
		BrandShort: brandShort,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ValidateToken checks if a token is fake or expired.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
