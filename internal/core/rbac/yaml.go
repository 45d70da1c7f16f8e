package rbac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

// ParseMatrix decodes a permission matrix from YAML so a deployment can swap
// role grants without a code change. The document maps role -> resource ->
// permission list:
//
//	finance:
//	  TRANSACTION: [CREATE, READ, UPDATE, DELETE]
//	  MEMBER: [READ]
//
// Unknown roles, resources or permissions are rejected. Declared roles and
// resources missing from the document are filled in with empty permission
// sets, keeping the matrix total.
func ParseMatrix(data []byte) (Matrix, error) {
	var raw map[string]map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse permission matrix: %w", err)
	}

	matrix := make(Matrix, len(domain.Roles))
	for roleName, resources := range raw {
		role := domain.Role(roleName)
		if !role.Valid() {
			return nil, fmt.Errorf("permission matrix: unknown role %q", roleName)
		}
		matrix[role] = make(map[Resource][]Permission, len(Resources))
		for resourceName, perms := range resources {
			resource := Resource(resourceName)
			if !validResource(resource) {
				return nil, fmt.Errorf("permission matrix: unknown resource %q for role %q", resourceName, roleName)
			}
			set := make([]Permission, 0, len(perms))
			for _, p := range perms {
				perm := Permission(p)
				if !validPermission(perm) {
					return nil, fmt.Errorf("permission matrix: unknown permission %q on %s/%s", p, roleName, resourceName)
				}
				set = append(set, perm)
			}
			matrix[role][resource] = set
		}
	}

	// Totality: every declared role/resource pair gets at least an empty set.
	for _, role := range domain.Roles {
		if matrix[role] == nil {
			matrix[role] = make(map[Resource][]Permission, len(Resources))
		}
		for _, resource := range Resources {
			if matrix[role][resource] == nil {
				matrix[role][resource] = []Permission{}
			}
		}
	}
	return matrix, nil
}

// LoadMatrixFile reads a YAML matrix from disk via ParseMatrix.
func LoadMatrixFile(path string) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read permission matrix: %w", err)
	}
	return ParseMatrix(data)
}

func validResource(r Resource) bool {
	switch r {
	case ResourceTransaction, ResourceMember, ResourceChart, ResourceExport:
		return true
	}
	return false
}

func validPermission(p Permission) bool {
	switch p {
	case PermissionCreate, PermissionRead, PermissionUpdate, PermissionDelete:
		return true
	}
	return false
}
