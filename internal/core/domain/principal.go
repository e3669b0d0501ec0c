package domain

import "errors"

var (
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrPrincipalExists    = errors.New("principal already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Principal models an identity that can hold a token.
type Principal struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Disabled bool   `json:"disabled"`
}

// Active reports whether the principal may pass the access gate.
func (p Principal) Active() bool {
	return !p.Disabled
}

// CredentialRecord is a Principal plus its password digest. It never leaves
// the credential store boundary in a response.
type CredentialRecord struct {
	Principal
	PasswordHash string `json:"-"`
}
