package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PhotoURL     string        `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	PasswordHash string        `bson:"password" json:"-"`
	Role         string        `bson:"role" json:"role"`
	CreatedAt    time.Time     `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updated_at"`
}

// Public strips credential fields for list/response payloads.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.Hex(),
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
		Role:     u.Role,
	}
}

type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Role     string `json:"role"`
}

type PublicUserList struct {
	Users []PublicUser `json:"users"`
}

// AuthClaims is the verified content of a session token. Role and email
// reflect the user record at issuance time; edits to the record take
// effect on the next login, not on outstanding tokens.
type AuthClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type LoginResult struct {
	Token     string     `json:"token"`
	Role      string     `json:"role"`
	ExpiresIn int64      `json:"expires_in"`
	User      PublicUser `json:"user"`
}
