package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
	"github.com/jrsteele09/decap-oauth-bridge/oauthmodel"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json"

	bodyMissingCode = "Missing code"
	bodyNotFound    = "Not found"
	bodyUpstream    = "Token exchange failed"
)

// Handle answers one request. A non-nil error means the token endpoint could
// not be reached or returned something unreadable; every other outcome,
// including client errors, is a Response.
func (b *Bridge) Handle(ctx context.Context, req Request) (Response, error) {
	switch {
	case strings.HasSuffix(req.Path, RouteAuth):
		return b.authorizeRedirect(req), nil
	case strings.HasSuffix(req.Path, RouteCallback):
		return b.tokenExchange(ctx, req)
	default:
		return textResponse(http.StatusNotFound, bodyNotFound), nil
	}
}

func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := b.Handle(r.Context(), RequestFromHTTP(r))
	if err != nil {
		log.Err(err).Str("path", r.URL.Path).Msg("OAuth bridge: token exchange failed")
		resp = textResponse(http.StatusBadGateway, bodyUpstream)
	}
	resp.Write(w)
}

// CallbackURL is the redirect_uri registered with the provider for req's host.
func (b *Bridge) CallbackURL(req Request) string {
	return oauthmodel.NewURLBuilder(oauthmodel.BaseURL(req.PublicProto(), req.PublicHost())).
		JoinPath(b.basePath, RouteCallback).
		String()
}

// AuthorizeURL is the provider URL the editor is sent to. No local validation
// happens; with missing configuration the provider rejects the request.
func (b *Bridge) AuthorizeURL(req Request) string {
	params := oauthmodel.AuthorizeParameters{
		ClientID:    b.oauth.ClientID,
		Scope:       strings.Join(b.oauth.Scopes, " "),
		RedirectURI: b.CallbackURL(req),
		AllowSignup: false,
	}
	return oauthmodel.NewURLBuilder(b.oauth.Endpoint.AuthURL).
		SetQuery(params.Values()).
		String()
}

func (b *Bridge) authorizeRedirect(req Request) Response {
	return Response{
		StatusCode: http.StatusFound,
		Header:     http.Header{"Location": {b.AuthorizeURL(req)}},
	}
}

func (b *Bridge) tokenExchange(ctx context.Context, req Request) (Response, error) {
	code := req.Query.Get("code")
	if code == "" {
		log.Debug().Err(errors.ErrMissingCode).Msg("OAuth bridge: callback rejected")
		return textResponse(http.StatusBadRequest, bodyMissingCode), nil
	}

	body, err := b.exchangeCode(ctx, code)
	if err != nil {
		return Response{}, err
	}

	tokenResp, err := oauthmodel.ParseProviderTokenResponse(body)
	if err != nil {
		return Response{}, errors.Join(errors.ErrUpstream, errors.Wrapf(err, "decode token response"))
	}

	if !tokenResp.HasAccessToken() {
		// Forwarded verbatim so the editor can show the provider's reason.
		log.Warn().
			Err(errors.ErrNoAccessToken).
			Str("provider_error", tokenResp.Error).
			Msg("OAuth bridge: code exchange rejected by provider")
		return Response{
			StatusCode: http.StatusBadRequest,
			Header:     http.Header{"Content-Type": {contentTypeJSON}},
			Body:       body,
		}, nil
	}

	out, err := json.Marshal(oauthmodel.BridgeTokenResponse{Token: tokenResp.AccessToken})
	if err != nil {
		return Response{}, errors.Wrapf(err, "encode token response")
	}
	return Response{
		StatusCode: http.StatusOK,
		Header: http.Header{
			"Content-Type":  {contentTypeJSON},
			"Cache-Control": {"no-store"},
		},
		Body: out,
	}, nil
}
