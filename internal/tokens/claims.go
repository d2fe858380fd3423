package tokens

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaims is the identity carried by a session token.
type UserClaims struct {
	FullName string
	UserID   uuid.UUID
	Email    string
	Role     string
}

type Claims struct {
	FullName string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserClaims() (UserClaims, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return UserClaims{}, err
	}
	return UserClaims{FullName: c.FullName, UserID: id, Email: c.Email, Role: c.Role}, nil
}
