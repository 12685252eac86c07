package enums

import "fmt"

// MemberRole scopes what a portal user may do: vendors buy, distributors
// sell and administer credit/analytics for their vendors.
type MemberRole string

const (
	MemberRoleVendor      MemberRole = "vendor"
	MemberRoleDistributor MemberRole = "distributor"
	MemberRoleAdmin       MemberRole = "admin"
)

var validMemberRoles = []MemberRole{
	MemberRoleVendor,
	MemberRoleDistributor,
	MemberRoleAdmin,
}

// String implements fmt.Stringer.
func (r MemberRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known MemberRole.
func (r MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
