package echoapi

import (
	"net/http"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jkatembo/kambi/core"
)

type tokenApi struct {
	conf *core.Config
}

func registerTokenAPI(e *echo.Echo, conf *core.Config) {
	api := tokenApi{conf: conf}

	e.POST("/jwt", api.create)
}

// create signs the posted claims object into a bearer token. The claims must
// carry an email for the downstream ownership checks to be meaningful.
func (api *tokenApi) create(ctx echo.Context) error {
	claims := make(jwt.MapClaims)
	if err := ctx.Bind(&claims); err != nil {
		return errors.Wrap(err, "binding claims")
	}
	if email, _ := claims["email"].(string); email == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "email", Error: "this field is required"})
	}

	token, err := GenerateToken(claims, []byte(api.conf.SecretKey))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

type TokenResponse struct {
	Token string `json:"token"`
}
