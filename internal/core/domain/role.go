package domain

type Role string

const (
	RoleIndividual Role = "individual"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Policy decides whether a role satisfies a route's capability requirement.
// An empty requirement means any authenticated user. Admin satisfies every
// requirement.
type Policy struct{}

func (Policy) Allows(have Role, required ...Role) bool {
	if !have.Valid() {
		return false
	}
	if len(required) == 0 || have == RoleAdmin {
		return true
	}
	for _, r := range required {
		if r == have {
			return true
		}
	}
	return false
}
