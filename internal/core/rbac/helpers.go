package rbac

import "github.com/orgboard/orgboard-api/internal/core/domain"

// Derived predicates for the common UI affordances. "Edit" deliberately
// requires BOTH update and delete so the edit and remove controls stay
// co-gated; changing one without the other would desynchronize the UI.

func (m Matrix) CanCreateTransaction(role domain.Role) bool {
	return m.Can(role, PermissionCreate, ResourceTransaction)
}

func (m Matrix) CanEditTransaction(role domain.Role) bool {
	return m.Can(role, PermissionUpdate, ResourceTransaction) &&
		m.Can(role, PermissionDelete, ResourceTransaction)
}

func (m Matrix) CanCreateMember(role domain.Role) bool {
	return m.Can(role, PermissionCreate, ResourceMember)
}

func (m Matrix) CanEditMember(role domain.Role) bool {
	return m.Can(role, PermissionUpdate, ResourceMember) &&
		m.Can(role, PermissionDelete, ResourceMember)
}

// CanExportData gates the export capability on CREATE: producing an export is
// a creating act, READ merely allows viewing previously exported files.
func (m Matrix) CanExportData(role domain.Role) bool {
	return m.Can(role, PermissionCreate, ResourceExport)
}
