package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type VerifyResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
	Method        string `json:"method,omitempty"`
	Reason        string `json:"reason,omitempty"`
}
