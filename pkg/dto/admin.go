package dto

import "time"

type InviteRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role,omitempty"`
}

type InviteResponse struct {
	UserID string `json:"userId"`
}

type AdminResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AnalyticsUnavailableResponse struct {
	Configured bool   `json:"configured"`
	Error      string `json:"error,omitempty"`
}
