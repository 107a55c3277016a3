package models

import (
	"fmt"
	"strings"

	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// Role is the closed set of account roles
type Role string

const (
	RoleStudent          Role = "student"
	RoleCompany          Role = "company"
	RoleSupervisorSchool Role = "supervisor-school"
	RoleDepartment       Role = "department"
	RoleILO              Role = "ilo"
)

// Roles lists every valid role
var Roles = []Role{RoleStudent, RoleCompany, RoleSupervisorSchool, RoleDepartment, RoleILO}

// ParseRole validates s against the role enumeration. Matching is exact.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, s)
}

// Valid reports whether r is a member of the enumeration
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}

// RoleNames returns the roles joined for messages and swagger enums
func RoleNames() string {
	names := make([]string, len(Roles))
	for i, r := range Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
