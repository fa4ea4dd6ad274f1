package constants

// Success Messages
const (
	MsgOTPSent     = "Verification code sent"
	MsgOTPVerified = "Verification code confirmed"
)

// Error Messages
const (
	ErrInvalidJSON         = "Invalid request body"
	ErrInvalidCredentials  = "Invalid email or password"
	ErrInvalidToken        = "invalid token"
	ErrEmailRequired       = "email is required"
	ErrInvalidOTP          = "Invalid verification code"
	ErrMissingAuthHeader   = "Authorization header is required"
	ErrInternal            = "Internal server error"
	ErrUpstreamUnavailable = "Content service is unavailable"
	ErrFailedToSendEmail   = "Failed to send verification email"
	ErrPaymentsUnavailable = "Payment service is not configured"
)
