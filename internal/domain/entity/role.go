package entity

// Role represents a capability claim carried in access tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	RoleStaff    Role = "staff"
)

// Roles is a list of roles attached to a user.
type Roles []Role

// ToStrings converts the roles to their string representation.
func (r Roles) ToStrings() []string {
	out := make([]string, 0, len(r))
	for _, role := range r {
		out = append(out, string(role))
	}

	return out
}
