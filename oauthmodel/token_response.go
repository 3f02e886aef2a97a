package oauthmodel

import "encoding/json"

// ProviderTokenResponse is the provider's reply from the token endpoint. The
// provider answers 200 for both outcomes: either AccessToken or Error is set.
type ProviderTokenResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	Scope       string `json:"scope,omitempty"`

	// Error is the provider's error code, e.g. "bad_verification_code".
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	ErrorURI         string `json:"error_uri,omitempty"`
}

// HasAccessToken reports whether the exchange produced a token.
func (r ProviderTokenResponse) HasAccessToken() bool {
	return r.AccessToken != ""
}

// ParseProviderTokenResponse decodes a token endpoint body. Fields that are not
// strings are treated as absent.
func ParseProviderTokenResponse(body []byte) (ProviderTokenResponse, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ProviderTokenResponse{}, err
	}
	return ProviderTokenResponse{
		AccessToken:      stringField(raw, "access_token"),
		TokenType:        stringField(raw, "token_type"),
		Scope:            stringField(raw, "scope"),
		Error:            stringField(raw, "error"),
		ErrorDescription: stringField(raw, "error_description"),
		ErrorURI:         stringField(raw, "error_uri"),
	}, nil
}

func stringField(raw map[string]json.RawMessage, key string) string {
	var s string
	if v, ok := raw[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

// BridgeTokenResponse is what the CMS editor receives after a successful
// exchange.
type BridgeTokenResponse struct {
	Token string `json:"token"`
}
