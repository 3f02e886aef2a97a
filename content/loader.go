package content

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
	"github.com/jrsteele09/decap-oauth-bridge/oauthmodel"
)

const maxBundleSize = 4 << 20

type Loader interface {
	Load(ctx context.Context, page string) Result
}

// FileLoader reads bundles from a site directory.
type FileLoader struct {
	FS      fs.FS
	Sources Sources
}

var _ Loader = FileLoader{}

func (l FileLoader) Load(_ context.Context, page string) Result {
	p, ok := l.Sources.Path(page)
	if !ok {
		return Ignored(errors.Wrapf(errors.ErrUnknownPage, "page %q", page))
	}

	data, err := fs.ReadFile(l.FS, strings.TrimPrefix(p, "/"))
	if err != nil {
		return Ignored(errors.Wrapf(err, "read bundle %s", p))
	}

	bundle, err := DecodeBundle(data)
	if err != nil {
		return Ignored(errors.Wrapf(err, "decode bundle %s", p))
	}
	return Loaded(bundle)
}

// HTTPLoader fetches bundles from a deployed site, bypassing caches.
type HTTPLoader struct {
	SiteURL string
	Client  *http.Client
	Sources Sources
}

var _ Loader = HTTPLoader{}

func (l HTTPLoader) Load(ctx context.Context, page string) Result {
	p, ok := l.Sources.Path(page)
	if !ok {
		return Ignored(errors.Wrapf(errors.ErrUnknownPage, "page %q", page))
	}

	bundleURL := oauthmodel.NewURLBuilder(l.SiteURL).JoinPath(p).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bundleURL, nil)
	if err != nil {
		return Ignored(errors.Wrapf(err, "build bundle request"))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Ignored(errors.Wrapf(err, "fetch bundle %s", bundleURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Ignored(errors.Wrapf(errors.ErrBundleStatus, "fetch bundle %s: %d", bundleURL, resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize))
	if err != nil {
		return Ignored(errors.Wrapf(err, "read bundle %s", bundleURL))
	}

	bundle, err := DecodeBundle(data)
	if err != nil {
		return Ignored(errors.Wrapf(err, "decode bundle %s", bundleURL))
	}
	return Loaded(bundle)
}
