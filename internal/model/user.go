package model

import "time"

// Role names used in JWT claims and permission checks. Tokens are issued
// by the campus gateway; this service only reads the role claim.
const (
	RoleStudent = "STUDENT"
	RoleStaff   = "STAFF"
	RoleAdmin   = "ADMIN"
)

// User represents an application user as stored in the `users` table.
// Passwords and sessions live in the campus identity gateway, not here;
// this service keeps only the profile fields needed to resolve reservation
// parties and roles.
//
// Fields:
//  ID        – primary key identifier.
//  Email     – unique email address.
//  FirstName – given name.
//  LastName  – family name.
//  Role      – role name (STUDENT, STAFF, ADMIN).
//  IsActive  – whether the account is active.
type User struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
