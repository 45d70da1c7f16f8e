// Package rbac is the static role-based access control engine: a total
// role -> resource -> permission matrix, a pure decision function, and the
// role-gated navigation list. It performs no I/O and holds no mutable state.
package rbac

import "github.com/orgboard/orgboard-api/internal/core/domain"

// Resource is a protectable category of dashboard data.
type Resource string

const (
	ResourceTransaction Resource = "TRANSACTION"
	ResourceMember      Resource = "MEMBER"
	ResourceChart       Resource = "CHART"
	ResourceExport      Resource = "EXPORT"
)

// Resources lists every declared resource, in declaration order.
var Resources = []Resource{ResourceTransaction, ResourceMember, ResourceChart, ResourceExport}

// Permission is a CRUD capability scoped to a resource.
type Permission string

const (
	PermissionCreate Permission = "CREATE"
	PermissionRead   Permission = "READ"
	PermissionUpdate Permission = "UPDATE"
	PermissionDelete Permission = "DELETE"
)

// Matrix maps role -> resource -> allowed permissions. A role or resource
// missing from the matrix behaves as an empty permission set.
type Matrix map[domain.Role]map[Resource][]Permission

// defaultMatrix is total: every declared role has an entry for every declared
// resource, even when the permission set is empty.
var defaultMatrix = Matrix{
	domain.RoleAdmin: {
		ResourceTransaction: {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
		ResourceMember:      {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
		ResourceChart:       {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
		ResourceExport:      {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
	},
	domain.RoleFinance: {
		ResourceTransaction: {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
		ResourceMember:      {PermissionRead},
		ResourceChart:       {PermissionRead},
		ResourceExport:      {PermissionCreate, PermissionRead},
	},
	domain.RoleWriter: {
		ResourceTransaction: {PermissionRead},
		ResourceMember:      {PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete},
		ResourceChart:       {PermissionRead},
		ResourceExport:      {PermissionRead},
	},
	domain.RoleUser: {
		ResourceTransaction: {PermissionRead},
		ResourceMember:      {PermissionRead},
		ResourceChart:       {PermissionRead},
		ResourceExport:      {},
	},
}

// Default returns the built-in permission matrix.
func Default() Matrix {
	return defaultMatrix
}

// Can reports whether role holds permission on resource. Unknown roles and
// resources simply yield false; the function is total over arbitrary input.
func (m Matrix) Can(role domain.Role, permission Permission, resource Resource) bool {
	perms, ok := m[role]
	if !ok {
		return false
	}
	for _, p := range perms[resource] {
		if p == permission {
			return true
		}
	}
	return false
}

// PermissionsFor returns the permission set role holds on resource; empty for
// anything outside the matrix.
func (m Matrix) PermissionsFor(role domain.Role, resource Resource) []Permission {
	perms := m[role][resource]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Can evaluates the default matrix.
func Can(role domain.Role, permission Permission, resource Resource) bool {
	return defaultMatrix.Can(role, permission, resource)
}
