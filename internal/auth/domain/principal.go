package domain

// PrincipalClass separates the two trust domains. Each class has its own
// signing secret and its own credential table.
type PrincipalClass string

const (
	PrincipalAdmin PrincipalClass = "admin"
	PrincipalUser  PrincipalClass = "user"
)

func (c PrincipalClass) Valid() bool {
	return c == PrincipalAdmin || c == PrincipalUser
}

func (c PrincipalClass) String() string {
	return string(c)
}

// Principal is the verified identity attached to a request.
type Principal struct {
	ID    string
	Class PrincipalClass
}

func (p Principal) IsAdmin() bool {
	return p.Class == PrincipalAdmin
}

func (p Principal) IsUser() bool {
	return p.Class == PrincipalUser
}
