package oauthmodel

import (
	"net/url"
	"strconv"
)

// ScopeRepo grants read/write access to the site's repository, which the CMS
// editor needs to commit content.
const ScopeRepo = "repo"

// AuthorizeParameters holds the query parameters sent to the provider's
// authorize endpoint when the editor starts a login.
type AuthorizeParameters struct {
	// ClientID identifies the OAuth app registered with the provider.
	// Required: Yes
	// Example: "Iv1.8a61f9b3a7aba766"
	// Source: OAUTH_CLIENT_ID
	ClientID string

	// Scope is the permission requested from the user.
	// Required: Yes
	// Example: "repo"
	Scope string

	// RedirectURI is where the provider sends the user back with a code.
	// Required: Yes
	// Example: "https://example.com/.netlify/functions/decap-github/callback"
	// Security: Must match the callback URL registered for the OAuth app
	RedirectURI string

	// AllowSignup lets the provider offer account creation on its login page.
	// Required: No
	// Example: false
	AllowSignup bool
}

// Values encodes the parameters with the provider's exact parameter names.
// No state parameter is sent; the CMS client does not echo one back.
func (p AuthorizeParameters) Values() url.Values {
	return url.Values{
		"client_id":    {p.ClientID},
		"scope":        {p.Scope},
		"redirect_uri": {p.RedirectURI},
		"allow_signup": {strconv.FormatBool(p.AllowSignup)},
	}
}
