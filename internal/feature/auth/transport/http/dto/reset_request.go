package dto

// ForgotPasswordReq represents the request body for the /forgot-password endpoint.
type ForgotPasswordReq struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordReq represents the request body for the /reset-password/:token endpoint.
// The token itself arrives as a path parameter.
type ResetPasswordReq struct {
	NewPassword string `json:"newPassword" binding:"required"`
}
