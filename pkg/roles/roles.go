package roles

// Role represents a user's permission level.
type Role string

const (
	Employee Role = "EMPLOYEE"
	Manager  Role = "MANAGER"
	Admin    Role = "ADMIN"
)

// HierarchyLevel orders roles from least to most privileged.
type HierarchyLevel int

const (
	EmployeeLevel HierarchyLevel = 1
	ManagerLevel  HierarchyLevel = 2
	AdminLevel    HierarchyLevel = 3
)

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Employee:
		return EmployeeLevel
	case Manager:
		return ManagerLevel
	case Admin:
		return AdminLevel
	default:
		return EmployeeLevel
	}
}

// HasPermission reports whether the role meets the required level.
func (r Role) HasPermission(requiredRole Role) bool {
	return r.GetHierarchyLevel() >= requiredRole.GetHierarchyLevel()
}

// IsManagerOrAdmin is the gate for mutating operations. A superuser
// passes regardless of role.
func IsManagerOrAdmin(r Role, superuser bool) bool {
	return superuser || r.HasPermission(Manager)
}

func (r Role) IsValid() bool {
	switch r {
	case Employee, Manager, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
