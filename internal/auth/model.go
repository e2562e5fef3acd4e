package auth

import "generic-api/pkg/jwt_generator"

const (
	RoleDefault = "user"

	FieldEmail     = "email"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldName      = "name"
	FieldRole      = "role"
	FieldIsActive  = "is_active"
	FieldLastLogin = "last_login"
)

type LoginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserProfile is the caller-safe projection of a user document: the password
// field is never part of it.
type UserProfile struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}

type LoginResult struct {
	User   *UserProfile          `json:"user"`
	Tokens *jwt_generator.Tokens `json:"tokens"`
}

type TokenStatus struct {
	Valid     bool   `json:"valid"`
	UserId    string `json:"user_id"`
	ExpiresAt string `json:"expires_at"`
	TokenType string `json:"token_type"`
}

type successResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
