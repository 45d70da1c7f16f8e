package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgboard/orgboard-api/internal/api/middleware"
	"github.com/orgboard/orgboard-api/internal/core/domain"
)

// ctxRole extracts the role injected by the Auth middleware. An empty role
// means the middleware did not run or the token carried no role claim; either
// way the request is not usable.
func ctxRole(c echo.Context) (domain.Role, error) {
	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	if role == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return role, nil
}
