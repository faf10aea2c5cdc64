package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jkatembo/kambi/core/user"
)

type userApi struct {
	svc      user.ServiceInterface
	validate *validator.Validate
}

func registerUserAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc user.ServiceInterface, validate *validator.Validate) {
	api := userApi{svc: svc, validate: validate}

	ug := e.Group("/users")

	// un-authed endpoints
	ug.POST("", api.register)
	ug.GET("/instructor", api.queryInstructors)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.GET("", api.query)
	ag.GET("/:email", api.retrieve, ownerMiddleware())
	ag.PATCH("/admin/:id", api.setRole, adminMiddleware(svc))
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		// registration is idempotent on email: report the duplicate, do not fail
		if errors.Cause(err) == user.ErrEmailExists {
			return ctx.JSON(http.StatusOK, MessageResponse{Message: user.ErrEmailExists.Error()})
		}
		return errors.Wrap(err, "registering user")
	}

	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) queryInstructors(ctx echo.Context) error {
	users, err := api.svc.QueryByRole(ctx.Request().Context(), user.RoleInstructor)
	if err != nil {
		return errors.Wrap(err, "querying instructors")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := api.svc.GetByEmail(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding user by email")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) setRole(ctx echo.Context) error {
	var data user.RoleUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RoleUpdate")
	}
	data.Clean()

	usr, err := api.svc.SetRole(ctx.Request().Context(), ctx.Param("id"), data.Role)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "setting user role")
	}
	return ctx.JSON(http.StatusOK, usr)
}

type MessageResponse struct {
	Message string `json:"message"`
}
