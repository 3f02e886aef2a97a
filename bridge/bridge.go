// Package bridge brokers the GitHub OAuth authorization-code exchange for a
// web-based CMS editor. It keeps no state between requests: the editor is
// redirected to the provider, and the code the provider returns is swapped
// for an access token that is handed straight back to the editor.
package bridge

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/decap-oauth-bridge/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// Route suffixes. Routing is by suffix so the bridge works under any mount
// point the hosting platform chooses.
const (
	RouteAuth     = "/auth"
	RouteCallback = "/callback"
)

// Bridge is safe for concurrent use; it holds only immutable configuration.
type Bridge struct {
	oauth      oauth2.Config
	basePath   string
	httpClient *http.Client
}

type Option func(*Bridge)

// WithEndpoint overrides the provider endpoints (github.Endpoint by default).
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(b *Bridge) {
		b.oauth.Endpoint = endpoint
	}
}

// WithHTTPClient sets the client used for the token exchange.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bridge) {
		b.httpClient = client
	}
}

// WithBasePath sets the path the bridge is mounted under, used to build the
// redirect_uri.
func WithBasePath(basePath string) Option {
	return func(b *Bridge) {
		b.basePath = "/" + strings.Trim(basePath, "/")
	}
}

func New(credentials config.Credentials, opts ...Option) *Bridge {
	b := &Bridge{
		oauth: oauth2.Config{
			ClientID:     credentials.ClientID,
			ClientSecret: credentials.ClientSecret.Value(),
			Endpoint:     github.Endpoint,
			Scopes:       []string{"repo"},
		},
		basePath: config.DefaultFunctionBasePath,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) BasePath() string {
	return b.basePath
}

// client picks the HTTP client for outbound calls: the configured one, then
// one carried in ctx under oauth2.HTTPClient, then http.DefaultClient.
func (b *Bridge) client(ctx context.Context) *http.Client {
	if b.httpClient != nil {
		return b.httpClient
	}
	if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && c != nil {
		return c
	}
	return http.DefaultClient
}
