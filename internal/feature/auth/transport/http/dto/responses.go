package dto

import "time"

// UserRes is the public view of a user record.
// Password hashes and reset tokens are never serialized.
type UserRes struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthRes is the response for successful registration and login.
type AuthRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
	Token   string  `json:"token"`
}

// MessageRes is the generic message-only response, used for acknowledgements
// and for all error responses.
type MessageRes struct {
	Message string `json:"message"`
}
