package model

import "time"

// User is a member of the study space or an administrator.  The Name
// field is shown to other members when their booking occupies a seat.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – login identifier, stored lower-cased.
//  PasswordHash – bcrypt hash of the password.
//  Name         – display name used on seat badges and invoices.
//  Role         – MEMBER or ADMIN.
//  IsActive     – whether the account may log in.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
