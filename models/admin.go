// models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleEmployee   = "employee"
)

// Identity is an auth account. Every provisioned user gets one;
// privileged roles additionally get an Admin profile row keyed by
// the same id.
type Identity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Admin is the profile record mirrored for super-admin and admin
// identities. AdminID equals the identity id.
type Admin struct {
	AdminID        primitive.ObjectID `bson:"adminId" json:"adminId"`
	FirstName      string             `bson:"first_name" json:"first_name"`
	LastName       string             `bson:"last_name" json:"last_name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role           string             `bson:"role" json:"role"`
	ProfilePicture string             `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	LastLogin      *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
