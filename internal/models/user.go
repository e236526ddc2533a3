package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the access level of a user.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// CanManageOthers reports whether the role may read and edit other tutors' data.
func (r Role) CanManageOthers() bool {
	return r == RoleAdmin || r == RoleManager
}

// User represents a registered account. Tutors are users with RoleEmployee.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	Name string

	// Email is unique and stored lowercase.
	Email string

	Role Role

	PasswordHash string

	Lessons   []Lesson
	Templates Templates
	Salaries  []SalaryRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with the default employee role.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        NormalizeEmail(email),
		Name:         name,
		Role:         RoleEmployee,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
