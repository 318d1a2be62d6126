package domain

import "errors"

// Profile is the account profile of the signed-in administrator.
// Exactly one instance exists per process.
type Profile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// UpdateProfileInput carries the two profile fields an administrator
// may edit. ID, email and role stay untouched.
type UpdateProfileInput struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ChangePasswordInput is submitted to the password-change endpoint.
// It produces no persisted entity in this layer.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

var ErrPasswordMismatch = errors.New("new password and confirmation do not match")

// Validate checks the confirmation field before the request leaves the
// process. Server-side policy checks still apply on the live path.
func (in ChangePasswordInput) Validate() error {
	if in.NewPassword != in.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}
