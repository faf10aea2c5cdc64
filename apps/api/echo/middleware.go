package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jkatembo/kambi/core/user"
)

// ownerMiddleware refuses the request when the verified identity's email does
// not match the :email path parameter. The mismatch is a hard stop; the
// handler is never reached.
func ownerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			email, err := getContextEmail(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context email")
			}
			if ctx.Param("email") != email {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// adminMiddleware looks the verified identity up in the identity store and
// requires the admin role. Being authenticated is not enough for the
// role/status mutating endpoints.
func adminMiddleware(svc user.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			email, err := getContextEmail(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context email")
			}

			usr, err := svc.GetByEmail(ctx.Request().Context(), email)
			if err != nil {
				if errors.Cause(err) == user.ErrNotFound {
					return errHttpForbidden
				}
				return errors.Wrap(err, "finding user by email")
			}
			if !usr.IsAdmin() {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
