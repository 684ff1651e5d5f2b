package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/BananaRealm/internal/user"
)

const contextKey = "user"

func SetupJWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(user.JwtCustomClaims)
		},
		SigningKey: user.SigningKey(),
		ContextKey: contextKey,
	})
}

// CurrentIdentity returns the caller set by SetupJWTMiddleware, or nil on
// routes it does not guard.
func CurrentIdentity(c echo.Context) *user.Identity {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(*user.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims.Identity()
}
