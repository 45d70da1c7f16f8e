package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orgboard/orgboard-api/internal/core/rbac"
)

// RBACHandler exposes the permission engine read-only: the caller's effective
// permissions and navigation list, derived from the role the Auth middleware
// resolved.
type RBACHandler struct {
	matrix rbac.Matrix
}

func NewRBACHandler(matrix rbac.Matrix) *RBACHandler {
	return &RBACHandler{matrix: matrix}
}

// Navigation returns the navigation entries visible to the caller's role.
//
// @Summary      Role-gated navigation list
// @Tags         rbac
// @Produce      json
// @Success      200  {array}  rbac.NavItem
// @Router       /rbac/navigation [get]
func (h *RBACHandler) Navigation(c echo.Context) error {
	role, err := ctxRole(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.matrix.NavigationItems(role))
}

type resourcePermissions struct {
	Resource    rbac.Resource     `json:"resource"`
	Permissions []rbac.Permission `json:"permissions"`
}

// Permissions returns the caller's permission set on one resource. Unknown
// resources yield an empty set, mirroring the engine's totality.
//
// @Summary      Effective permissions on a resource
// @Tags         rbac
// @Produce      json
// @Param        resource  path      string  true  "Resource name"
// @Success      200       {object}  resourcePermissions
// @Router       /rbac/permissions/{resource} [get]
func (h *RBACHandler) Permissions(c echo.Context) error {
	role, err := ctxRole(c)
	if err != nil {
		return err
	}
	resource := rbac.Resource(c.Param("resource"))
	return c.JSON(http.StatusOK, resourcePermissions{
		Resource:    resource,
		Permissions: h.matrix.PermissionsFor(role, resource),
	})
}
