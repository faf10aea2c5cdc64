package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jkatembo/kambi/core/class"
	"github.com/jkatembo/kambi/core/user"
)

type classApi struct {
	svc      class.ServiceInterface
	validate *validator.Validate
}

func registerClassAPI(
	e *echo.Echo,
	jwt echo.MiddlewareFunc,
	svc class.ServiceInterface,
	usrSvc user.ServiceInterface,
	validate *validator.Validate,
) {
	api := classApi{svc: svc, validate: validate}

	cg := e.Group("/classes")

	// un-authed endpoints
	cg.GET("/approved", api.queryApproved)

	// authed endpoints
	ag := cg.Group("", jwt)
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.GET("/:email", api.queryByInstructor, ownerMiddleware())
	ag.PATCH("/admin/:id", api.transition, adminMiddleware(usrSvc))
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) query(ctx echo.Context) error {
	classes, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) queryApproved(ctx echo.Context) error {
	classes, err := api.svc.QueryApproved(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying approved classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) queryByInstructor(ctx echo.Context) error {
	classes, err := api.svc.QueryByInstructor(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		return errors.Wrap(err, "querying instructor classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) transition(ctx echo.Context) error {
	var data class.Transition
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Transition")
	}

	cls, err := api.svc.Transition(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == class.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "transitioning class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == class.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}
