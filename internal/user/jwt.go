package user

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JwtCustomClaims struct {
	Id       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func (c *JwtCustomClaims) Identity() *Identity {
	return &Identity{
		UserID:      strconv.FormatUint(uint64(c.Id), 10),
		DisplayName: c.Username,
		Email:       c.Email,
	}
}

var (
	signingKey []byte
	tokenTTL   = 72 * time.Hour
)

// ConfigureJWT sets the HMAC key and lifetime used by GenerateJWT.
func ConfigureJWT(secret string, ttl time.Duration) {
	signingKey = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func SigningKey() []byte {
	return signingKey
}

var GenerateJWT = func(u *User) (string, error) {
	claims := JwtCustomClaims{
		Id:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ParseJWT validates an HS256 token and returns its claims.
func ParseJWT(tokenString string) (*JwtCustomClaims, error) {
	claims := &JwtCustomClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
