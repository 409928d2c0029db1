package dto

// LoginRequest captures credential input.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse contains the issued access token.
type TokenResponse struct {
	Token string `json:"jwt-token"`
}

// RegistrationResponse is returned after a successful self-service registration.
type RegistrationResponse struct {
	Token  string         `json:"jwt-token"`
	Person PersonResponse `json:"person"`
}

// PrincipalResponse describes the authenticated caller.
type PrincipalResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
