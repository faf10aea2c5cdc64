package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jkatembo/kambi/core/selection"
)

type selectionApi struct {
	svc      selection.ServiceInterface
	validate *validator.Validate
}

func registerSelectionAPI(e *echo.Echo, jwt echo.MiddlewareFunc, svc selection.ServiceInterface, validate *validator.Validate) {
	api := selectionApi{svc: svc, validate: validate}

	sg := e.Group("/selected")

	// un-authed endpoints
	sg.POST("", api.add)
	sg.DELETE("/:id", api.remove)

	// authed endpoints
	sg.GET("/:email", api.queryByUser, jwt, ownerMiddleware())
}

// Handlers

func (api *selectionApi) add(ctx echo.Context) error {
	var data selection.NewSelection
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSelection")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sel, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		// adding is idempotent on (classID, userEmail): report the duplicate, do not fail
		if errors.Cause(err) == selection.ErrAlreadySelected {
			return ctx.JSON(http.StatusOK, MessageResponse{Message: selection.ErrAlreadySelected.Error()})
		}
		return errors.Wrap(err, "adding selection")
	}

	return ctx.JSON(http.StatusCreated, sel)
}

func (api *selectionApi) queryByUser(ctx echo.Context) error {
	sels, err := api.svc.QueryByUser(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		return errors.Wrap(err, "querying selections")
	}
	if sels == nil {
		sels = []selection.Selection{}
	}
	return ctx.JSON(http.StatusOK, sels)
}

func (api *selectionApi) remove(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == selection.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "removing selection")
	}
	return ctx.NoContent(http.StatusNoContent)
}
