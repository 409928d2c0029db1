package dto

// PersonRequest is used both for registration and for profile replacement.
// On update an empty password keeps the stored one.
type PersonRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       *string `json:"email,omitempty"`
	YearOfBirth *int    `json:"yearOfBirth,omitempty"`
}

// ChangeRoleRequest carries an administrator role assignment.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// PersonResponse represents person data returned to clients.
type PersonResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       *string `json:"email,omitempty"`
	YearOfBirth *int    `json:"yearOfBirth,omitempty"`
	Role        string  `json:"role"`
}
