package models

type AuthMethod string

const (
	AuthMethodLocal     AuthMethod = "local"
	AuthMethodFederated AuthMethod = "federated"
)

// Identity is the normalized result of a successful authentication. It lives
// for a single request.
type Identity struct {
	Subject     string     `json:"-"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	DisplayName string     `json:"displayName"`
	Method      AuthMethod `json:"method"`
}
