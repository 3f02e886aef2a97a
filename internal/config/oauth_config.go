package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	clientIDEnvVar     = "OAUTH_CLIENT_ID"
	clientSecretEnvVar = "OAUTH_CLIENT_SECRET"
	basePathEnvVar     = "FUNCTION_BASE_PATH"

	DefaultFunctionBasePath = "/.netlify/functions/decap-github"
)

type OAuthConfig interface {
	GetCredentials() Credentials
	GetFunctionBasePath() string
}

// Credentials is the OAuth app's client id / secret pair.
type Credentials struct {
	ClientID     string       `yaml:"client_id" validate:"required"`
	ClientSecret SecretString `yaml:"client_secret" validate:"required"`
}

// Validate reports missing fields. The bridge still starts with incomplete
// credentials; the provider rejects the resulting requests.
func (c Credentials) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate credentials: %w", err)
	}
	return nil
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetCredentials() Credentials {
	return Credentials{
		ClientID:     GetEnv(clientIDEnvVar, ""),
		ClientSecret: NewSecretString(GetEnv(clientSecretEnvVar, "")),
	}
}

// GetFunctionBasePath is the path prefix the bridge is mounted under. It is also
// used to build the redirect_uri sent to the provider.
func (OAuth) GetFunctionBasePath() string {
	return GetEnv(basePathEnvVar, DefaultFunctionBasePath)
}
