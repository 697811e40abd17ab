package enums

import "fmt"

// UserRole identifies the actor role carried in the session token.
type UserRole string

const (
	RoleCustomer    UserRole = "customer"
	RoleDistributor UserRole = "distributor"
	RoleVendor      UserRole = "vendor"
	RoleAdmin       UserRole = "admin"
)

var validUserRoles = []UserRole{
	RoleCustomer,
	RoleDistributor,
	RoleVendor,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
