package echoapi

import (
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/jkatembo/kambi/core"
)

// claimsContextKey is where the JWT middleware stores the verified token.
const claimsContextKey = "userToken"

// jwtConfig is the JWT auth middleware config. Tokens are HS256-signed
// arbitrary claims; no expiration is enforced beyond what the caller put in
// the claims themselves.
func jwtConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    claimsContextKey,
	}
}

// GenerateToken generates a signed JWT token string embedding claims as-is.
func GenerateToken(claims jwt.MapClaims, secretKey []byte) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(secretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (jwt.MapClaims, error) {
	if token, ok := ctx.Get(claimsContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			return claims, nil
		}
	}
	return nil, errHttpUnauthorized
}

// getContextEmail returns the verified identity's email.
// The email claim is immutable for the lifetime of a token.
func getContextEmail(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errHttpUnauthorized
	}
	return email, nil
}
