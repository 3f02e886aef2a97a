package content

import (
	"bytes"
	"context"
)

// RenderPage fills page from its bundle. On any failure the original bytes
// are returned unchanged together with the Ignored result.
func RenderPage(ctx context.Context, loader Loader, page []byte) ([]byte, Result) {
	key, err := PageKey(page)
	if err != nil {
		return page, Ignored(err)
	}

	res := loader.Load(ctx, key)
	if !res.IsLoaded() {
		return page, res
	}

	out, err := Inject(bytes.NewReader(page), res.Bundle)
	if err != nil {
		return page, Ignored(err)
	}
	return out, res
}
