package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
)

// actorContextKey is where the authentication middleware stashes the
// re-loaded actor account for the request.
const actorContextKey = "actor"

// SetActor stores the authenticated actor on the request context.
func SetActor(c echo.Context, account *model.Account) {
	c.Set(actorContextKey, account)
}

// Actor returns the authenticated actor stored by the middleware.
func Actor(c echo.Context) (*model.Account, bool) {
	account, ok := c.Get(actorContextKey).(*model.Account)
	return account, ok
}

// pathID parses the :id route parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.ErrNotFound
	}
	return id, nil
}

// respondError maps a domain error onto the standardized error body.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
