package auth

import (
	"fmt"
	"strings"
)

type Role int

const (
	ADMIN Role = iota
	USER
)

var roleToString = map[Role]string{
	ADMIN: "admin",
	USER:  "user",
}

var roleFromString = map[string]Role{
	"admin": ADMIN,
	"user":  USER,
}

func (r Role) String() string {
	return roleToString[r]
}

// RoleFromString parses a stored or requested role name, ignoring case.
func RoleFromString(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if val, ok := roleFromString[s]; ok {
		return val, nil
	}
	return -1, fmt.Errorf("invalid role: %q", s)
}
