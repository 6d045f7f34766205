package handlers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yasshp/Mr-System/config"
)

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// generateJWT issues an HS256 token valid for 24 hours.
func generateJWT(userID, role, name string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func parseJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// normalizeDate canonicalizes incoming dates to YYYY-MM-DD. The stored dates
// are exact-match strings, so mixed client formats have to be folded into one
// representation here, at the boundary. Unparseable input passes through
// unchanged and simply matches nothing.
func normalizeDate(date string) string {
	layouts := []string{"2006-01-02", "02-01-2006", "02/01/2006", "2006/01/02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return date
}
