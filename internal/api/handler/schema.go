package handler

// errorResponse documents the {"detail": ...} envelope rendered by the
// central error handler. Detail is a string, or a list of field violations
// on 422.
type errorResponse struct {
	Detail any `json:"detail"`
}

// --- Auth ---

// tokenRequest is the OAuth2 password form accepted by POST /token.
// Scope is accepted and ignored.
type tokenRequest struct {
	Username  string `form:"username"   validate:"required"`
	Password  string `form:"password"   validate:"required"`
	GrantType string `form:"grant_type" validate:"omitempty,eq=password"`
	Scope     string `form:"scope"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// principalResponse always carries every field; unset optional fields are null.
type principalResponse struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Disabled bool    `json:"disabled"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --- Mappings ---

// generateRequest uses a pointer so an explicit empty string is a valid value
// while a missing key fails validation.
type generateRequest struct {
	Value *string `json:"value" validate:"required"`
}

type generateResponse struct {
	UUID string `json:"uuid"`
}

type resolveResponse struct {
	Value string `json:"value"`
}
