package accounts

// loginRequest carries demo credentials for token issuance
// @Name LoginRequest
type loginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"admin@pattaya1.com"`
	Password string `json:"password" validate:"required" example:"admin123"`
}

// registerRequest creates a new demo identity
// @Name RegisterRequest
type registerRequest struct {
	Email    string `json:"email" validate:"required,email" example:"new@pattaya1.com"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required" example:"New Visitor"`
}

// PublicUser is the identity view returned to clients. The password field of
// the underlying record is never serialized.
// @Name PublicUser
type PublicUser struct {
	ID    string `json:"id" example:"1"`
	Email string `json:"email" example:"admin@pattaya1.com"`
	Name  string `json:"name,omitempty" example:"Pattaya1 Admin"`
	Role  string `json:"role" example:"admin"`
}

// authResponse pairs a signed session token with the issued identity
// @Name AuthResponse
type authResponse struct {
	Token string     `json:"token" example:"eyJhbGciOiJIUzI1Ni..."`
	User  PublicUser `json:"user"`
}

// sendOTPRequest asks for a verification code by email
// @Name SendOTPRequest
type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email" example:"a@b.com"`
}

// verifyOTPRequest exchanges a previously sent code
// @Name VerifyOTPRequest
type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email" example:"a@b.com"`
	// Code must be exactly 5 digits
	Code string `json:"code" validate:"required,len=5,numeric" example:"12345"`
}
