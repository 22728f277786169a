package account

import "fmt"

// Role is a closed enumeration, roles are assigned at registration and
// never change afterwards.
type Role int

const (
	RoleStandardUser Role = iota
	RoleAdministrator
)

func (r Role) String() string {
	switch r {
	case RoleStandardUser:
		return "user"
	case RoleAdministrator:
		return "admin"
	}
	panic(fmt.Sprintf("unknown account role: %d", int(r)))
}

func ParseRole(raw string) (Role, error) {
	switch raw {
	case "user":
		return RoleStandardUser, nil
	case "admin":
		return RoleAdministrator, nil
	}
	return Role(0), fmt.Errorf("unknown account role: %q", raw)
}
