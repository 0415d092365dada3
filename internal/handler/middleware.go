package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"campusgate/internal/auth"
	apperrors "campusgate/internal/errors"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

// RequireRole authenticates the request and authorizes it for exactly
// one role. The token only identifies the caller; role and approval
// status are re-derived from the account's current state in the store,
// so a token issued before a rejection or removal stops working here
// even though it still decodes client-side.
func RequireRole(
	required roles.Role,
	tokens *auth.JWTService,
	accounts repository.AccountRepository,
	revocations auth.RevocationStoreInterface,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := tokens.Parse(bearerToken(c))
			if err != nil {
				return unauthenticated(c)
			}

			ctx := c.Request().Context()
			if revoked, _ := revocations.IsRevoked(ctx, claims.ID, claims.Subject); revoked {
				return unauthenticated(c)
			}

			accountID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return unauthenticated(c)
			}
			account, err := accounts.FindByID(ctx, accountID)
			if err != nil || account.ApprovalStatus != model.StatusApproved {
				return unauthenticated(c)
			}
			if account.Role != required {
				he := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return c.JSON(he.StatusCode, he.ToErrorResponse())
			}

			SetActor(c, account)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	he := apperrors.NewHTTPError(http.StatusUnauthorized, "authentication required", "UNAUTHENTICATED")
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
