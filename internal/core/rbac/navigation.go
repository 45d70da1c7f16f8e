package rbac

import "github.com/orgboard/orgboard-api/internal/core/domain"

// NavItem is one entry of the role-gated navigation list. Icon is a key the
// rendering layer maps to an actual glyph.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// navItems is the full ordered list; eligible filters per role. Role only ever
// affects inclusion, never the relative order of included items.
var navItems = []struct {
	item     NavItem
	eligible func(Matrix, domain.Role) bool
}{
	{NavItem{Path: "/", Label: "Dashboard", Icon: "BarChart3"}, func(Matrix, domain.Role) bool { return true }},
	{NavItem{Path: "/keuangan", Label: "Keuangan", Icon: "DollarSign"}, func(m Matrix, r domain.Role) bool {
		return m.Can(r, PermissionRead, ResourceTransaction)
	}},
	{NavItem{Path: "/anggota", Label: "Anggota", Icon: "Users"}, func(m Matrix, r domain.Role) bool {
		return m.Can(r, PermissionRead, ResourceMember)
	}},
	{NavItem{Path: "/profile", Label: "Profile", Icon: "User"}, func(Matrix, domain.Role) bool { return true }},
}

// NavigationItems returns the navigation entries visible to role, in fixed
// order.
func (m Matrix) NavigationItems(role domain.Role) []NavItem {
	out := make([]NavItem, 0, len(navItems))
	for _, entry := range navItems {
		if entry.eligible(m, role) {
			out = append(out, entry.item)
		}
	}
	return out
}

// NavigationItems evaluates the default matrix.
func NavigationItems(role domain.Role) []NavItem {
	return defaultMatrix.NavigationItems(role)
}
