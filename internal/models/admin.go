package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Admin struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName       string             `bson:"fullname" json:"fullname"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password,omitempty" json:"password,omitempty"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Role           Role               `bson:"role" json:"role"`
	EmailVerified  bool               `bson:"emailVerified" json:"emailVerified"`
	PhoneVerified  bool               `bson:"phoneVerified" json:"phoneVerified"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Sanitized returns a copy safe for responses, with the password hash removed.
func (a Admin) Sanitized() Admin {
	a.Password = ""
	return a
}
