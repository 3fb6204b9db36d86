package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// RolePrefixes maps a role to the prefix of its human-facing uniqueId.
// The two namespaces are independent: STU-0001 and TCH-0001 may coexist.
var RolePrefixes = map[string]string{
	RoleStudent: "STU",
	RoleTeacher: "TCH",
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	College      string             `bson:"college" json:"college"`
	UniqueID     string             `bson:"uniqueId" json:"uniqueId"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the projection returned to clients. It never carries the
// password hash.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	College  string `json:"college"`
	UniqueID string `json:"uniqueId"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.Hex(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		College:  u.College,
		UniqueID: u.UniqueID,
	}
}
