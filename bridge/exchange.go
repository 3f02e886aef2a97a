package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
	"github.com/jrsteele09/decap-oauth-bridge/oauthmodel"
)

// maxTokenResponseSize caps how much of the provider reply is read.
const maxTokenResponseSize = 1 << 20

// exchangeCode posts the code to the token endpoint as JSON and returns the
// raw reply body. The provider's HTTP status is not inspected: GitHub reports
// bad codes with 200 and an "error" field, and the body decides the outcome.
func (b *Bridge) exchangeCode(ctx context.Context, code string) ([]byte, error) {
	payload, err := json.Marshal(oauthmodel.TokenRequest{
		ClientID:     b.oauth.ClientID,
		ClientSecret: b.oauth.ClientSecret,
		Code:         code,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "encode token request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.oauth.Endpoint.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Join(errors.ErrUpstream, errors.Wrapf(err, "build token request"))
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Accept", contentTypeJSON)

	resp, err := b.client(ctx).Do(httpReq)
	if err != nil {
		return nil, errors.Join(errors.ErrUpstream, errors.Wrapf(err, "post %s", b.oauth.Endpoint.TokenURL))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseSize))
	if err != nil {
		return nil, errors.Join(errors.ErrUpstream, errors.Wrapf(err, "read token response"))
	}
	return body, nil
}
