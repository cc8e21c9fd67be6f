package user

type Role string

const (
	RoleAdmin           Role = "admin"            // Platform administrator - full access
	RoleSalesperson     Role = "salesperson"      // Sales rep carrying a profile link
	RoleOverrideManager Role = "override_manager" // Supervises salespeople, earns the override share
	RoleContractor      Role = "contractor"
	RoleHomeowner       Role = "homeowner"
)

func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// Principal is the authenticated caller resolved from the access token.
type Principal struct {
	ID   string
	Role Role
}

// IsAdmin checks if the principal is a platform administrator
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Can checks the principal's role against the permission table
func (p Principal) Can(permission Permission) bool {
	return HasPermission(p.Role, permission)
}
