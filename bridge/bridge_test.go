package bridge_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/decap-oauth-bridge/bridge"
	"github.com/jrsteele09/decap-oauth-bridge/internal/config"
	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
	"github.com/jrsteele09/decap-oauth-bridge/oauthmodel"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testClientID     = "test-client-1"
	testClientSecret = "test-secret-1"
	testCode         = "abc123"
	testHost         = "cms.example.com"
	testBasePath     = "/.netlify/functions/decap-github"
)

// providerStub is a fake token endpoint that records what it was sent.
type providerStub struct {
	t        *testing.T
	server   *httptest.Server
	reply    string
	mu       sync.Mutex
	requests []oauthmodel.TokenRequest
}

func newProviderStub(t *testing.T, reply string) *providerStub {
	t.Helper()
	p := &providerStub{t: t, reply: reply}
	p.server = httptest.NewServer(http.HandlerFunc(p.serveToken))
	t.Cleanup(p.server.Close)
	return p
}

func (p *providerStub) serveToken(w http.ResponseWriter, r *http.Request) {
	require.Equal(p.t, http.MethodPost, r.Method)
	require.Equal(p.t, "/login/oauth/access_token", r.URL.Path)
	require.Equal(p.t, "application/json", r.Header.Get("Content-Type"))
	require.Equal(p.t, "application/json", r.Header.Get("Accept"))

	var tr oauthmodel.TokenRequest
	require.NoError(p.t, json.NewDecoder(r.Body).Decode(&tr))
	p.mu.Lock()
	p.requests = append(p.requests, tr)
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, p.reply)
}

func (p *providerStub) endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:  p.server.URL + "/login/oauth/authorize",
		TokenURL: p.server.URL + "/login/oauth/access_token",
	}
}

func testCredentials() config.Credentials {
	return config.Credentials{
		ClientID:     testClientID,
		ClientSecret: config.NewSecretString(testClientSecret),
	}
}

func newTestBridge(p *providerStub) *bridge.Bridge {
	return bridge.New(testCredentials(), bridge.WithEndpoint(p.endpoint()), bridge.WithHTTPClient(p.server.Client()))
}

func callbackRequest(query url.Values) bridge.Request {
	return bridge.Request{
		Path:   testBasePath + "/callback",
		Host:   testHost,
		Header: http.Header{},
		Query:  query,
	}
}

func TestAuthRedirect(t *testing.T) {
	b := bridge.New(testCredentials())

	resp, err := b.Handle(context.Background(), bridge.Request{
		Path: testBasePath + "/auth",
		Host: "internal:8888",
		Header: http.Header{
			"X-Forwarded-Host":  {testHost},
			"X-Forwarded-Proto": {"https"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Empty(t, resp.Body)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "https", location.Scheme)
	require.Equal(t, "github.com", location.Host)
	require.Equal(t, "/login/oauth/authorize", location.Path)

	q := location.Query()
	require.Equal(t, testClientID, q.Get("client_id"))
	require.Equal(t, "repo", q.Get("scope"))
	require.Equal(t, "https://"+testHost+testBasePath+"/callback", q.Get("redirect_uri"))
	require.Equal(t, "false", q.Get("allow_signup"))
	require.False(t, q.Has("state"))
	require.False(t, q.Has("response_type"))
	require.NotContains(t, location.String(), testClientSecret)
}

func TestAuthRedirectFallsBackToHostAndHTTPS(t *testing.T) {
	b := bridge.New(testCredentials())

	resp, err := b.Handle(context.Background(), bridge.Request{Path: "/auth", Host: "localhost:8888"})
	require.NoError(t, err)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "https://localhost:8888"+testBasePath+"/callback", location.Query().Get("redirect_uri"))
}

func TestAuthRedirectUsesForwardedProto(t *testing.T) {
	b := bridge.New(testCredentials(), bridge.WithBasePath("api/oauth/"))

	req := httptest.NewRequest(http.MethodGet, "http://localhost:8080/api/oauth/auth", nil)
	req.Header.Set("X-Forwarded-Proto", "http")
	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/api/oauth/callback", location.Query().Get("redirect_uri"))
}

func TestAuthRedirectWithoutConfiguration(t *testing.T) {
	b := bridge.New(config.Credentials{})

	resp, err := b.Handle(context.Background(), bridge.Request{Path: "/auth", Host: testHost})
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.True(t, location.Query().Has("client_id"))
	require.Empty(t, location.Query().Get("client_id"))
}

func TestCallbackMissingCode(t *testing.T) {
	p := newProviderStub(t, `{"access_token":"never"}`)
	b := newTestBridge(p)

	for _, query := range []url.Values{nil, {}, {"code": {""}}, {"state": {"x"}}} {
		resp, err := b.Handle(context.Background(), callbackRequest(query))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Missing code", string(resp.Body))
	}
	require.Empty(t, p.requests)
}

func TestCallbackSuccess(t *testing.T) {
	p := newProviderStub(t, `{"access_token":"tok_xyz","token_type":"bearer","scope":"repo"}`)
	b := newTestBridge(p)

	resp, err := b.Handle(context.Background(), callbackRequest(url.Values{"code": {testCode}}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.JSONEq(t, `{"token":"tok_xyz"}`, string(resp.Body))

	require.Equal(t, []oauthmodel.TokenRequest{{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		Code:         testCode,
	}}, p.requests)
}

func TestCallbackProviderErrorForwardedVerbatim(t *testing.T) {
	p := newProviderStub(t, `{"error":"bad_verification_code"}`)
	b := newTestBridge(p)

	resp, err := b.Handle(context.Background(), callbackRequest(url.Values{"code": {testCode}}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `{"error":"bad_verification_code"}`, string(resp.Body))
	require.Empty(t, resp.Header.Get("Cache-Control"))
}

func TestCallbackEmptyAccessTokenIsAnError(t *testing.T) {
	p := newProviderStub(t, `{"access_token":""}`)
	b := newTestBridge(p)

	resp, err := b.Handle(context.Background(), callbackRequest(url.Values{"code": {testCode}}))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, `{"access_token":""}`, string(resp.Body))
}

func TestCallbackMalformedProviderJSON(t *testing.T) {
	p := newProviderStub(t, `<html>rate limited</html>`)
	b := newTestBridge(p)

	_, err := b.Handle(context.Background(), callbackRequest(url.Values{"code": {testCode}}))
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrUpstream))

	req := httptest.NewRequest(http.MethodGet, testBasePath+"/callback?code="+testCode, nil)
	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "Token exchange failed", rec.Body.String())
}

func TestCallbackProviderUnreachable(t *testing.T) {
	p := newProviderStub(t, `{}`)
	b := newTestBridge(p)
	p.server.Close()

	_, err := b.Handle(context.Background(), callbackRequest(url.Values{"code": {testCode}}))
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrUpstream))
	require.NotContains(t, err.Error(), testClientSecret)
}

func TestCallbackUsesContextHTTPClient(t *testing.T) {
	p := newProviderStub(t, `{"access_token":"tok_ctx"}`)
	b := bridge.New(testCredentials(), bridge.WithEndpoint(p.endpoint()))

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, p.server.Client())
	resp, err := b.Handle(ctx, callbackRequest(url.Values{"code": {testCode}}))
	require.NoError(t, err)
	require.JSONEq(t, `{"token":"tok_ctx"}`, string(resp.Body))
}

func TestUnmatchedRoute(t *testing.T) {
	b := bridge.New(testCredentials())

	for _, path := range []string{"/", testBasePath, testBasePath + "/auth/", testBasePath + "/callbacks", "/authorize"} {
		resp, err := b.Handle(context.Background(), bridge.Request{Path: path, Host: testHost})
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		require.Equal(t, "Not found", string(resp.Body))
	}
}

func TestServeHTTPWritesPlainTextBodies(t *testing.T) {
	b := bridge.New(testCredentials())

	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, testBasePath+"/callback", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Missing code", rec.Body.String())
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
}

func TestConcurrentExchangesAreIndependent(t *testing.T) {
	p := newProviderStub(t, `{"access_token":"tok_shared"}`)
	b := newTestBridge(p)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			resp, err := b.Handle(context.Background(), callbackRequest(url.Values{"code": {code}}))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}(testCode + string(rune('a'+i)))
	}
	wg.Wait()
	require.Len(t, p.requests, 8)
}
