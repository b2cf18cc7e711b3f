package profileservice

// ClientProfile is a self-service client profile from the profile service.
type ClientProfile struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IsActive bool    `json:"is_active"`
}

// StaffMember is a staff profile from the profile service.
type StaffMember struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse is the error payload returned by the profile service.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
