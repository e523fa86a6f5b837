package service

import "marketcatalyst/internal/model"

// UserResult is the uniform outcome wrapper for registration and
// authentication. Success is derived at construction: a result without an
// error message succeeded.
type UserResult struct {
	User         *model.User
	ErrorMessage string
	Success      bool
}

// NewUserResult builds a result; pass an empty errorMessage for success.
func NewUserResult(user *model.User, errorMessage string) *UserResult {
	return &UserResult{
		User:         user,
		ErrorMessage: errorMessage,
		Success:      errorMessage == "",
	}
}
