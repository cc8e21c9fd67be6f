package user

type Permission string

const (
	// Commission records
	PermissionCommissionViewOwn Permission = "commission.view_own"
	PermissionCommissionViewAll Permission = "commission.view_all"
	PermissionCommissionManage  Permission = "commission.manage"

	// Payment batches
	PermissionPaymentManage Permission = "payment.manage"

	// Service rates
	PermissionRateView   Permission = "rate.view"
	PermissionRateManage Permission = "rate.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionCommissionViewOwn,
		PermissionCommissionViewAll,
		PermissionCommissionManage,
		PermissionPaymentManage,
		PermissionRateView,
		PermissionRateManage,
	},
	RoleSalesperson: {
		PermissionCommissionViewOwn,
		PermissionRateView,
	},
	RoleOverrideManager: {
		PermissionCommissionViewOwn,
		PermissionRateView,
	},
	RoleContractor: {
		PermissionRateView,
	},
	RoleHomeowner: {
		// Homeowners never see commission data
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
