package models

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleDoctor:
		return RoleDoctor, true
	case RolePatient:
		return RolePatient, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

func (r Role) String() string {
	return string(r)
}
