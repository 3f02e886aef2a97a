package oauthmodel

// TokenRequest is the JSON body posted to the provider's token endpoint to
// exchange an authorization code.
type TokenRequest struct {
	// ClientID identifies the OAuth app.
	// Required: Yes
	ClientID string `json:"client_id"`

	// ClientSecret authenticates the OAuth app.
	// Required: Yes
	// Security: Only ever sent server to server; never logged or returned
	ClientSecret string `json:"client_secret"`

	// Code is the authorization code from the callback query string.
	// Required: Yes
	// Usage: Single use, short lived, not tracked locally
	Code string `json:"code"`
}
