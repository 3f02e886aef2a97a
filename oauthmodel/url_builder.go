package oauthmodel

import (
	"net/url"
	"strings"
)

// URLBuilder assembles a URL from a base, path segments and query parameters
// so that values are always escaped.
type URLBuilder struct {
	Base  string
	Path  string
	Query url.Values
}

func NewURLBuilder(base string) *URLBuilder {
	return &URLBuilder{Base: base, Query: url.Values{}}
}

// BaseURL returns "<scheme>://<host>" as a builder base.
func BaseURL(scheme, host string) string {
	return (&url.URL{Scheme: scheme, Host: host}).String()
}

// JoinPath appends path segments, collapsing duplicate slashes at the joins.
func (b *URLBuilder) JoinPath(segments ...string) *URLBuilder {
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		b.Path = strings.TrimSuffix(b.Path, "/") + "/" + strings.TrimPrefix(segment, "/")
	}
	return b
}

func (b *URLBuilder) SetQuery(values url.Values) *URLBuilder {
	if b.Query == nil {
		b.Query = url.Values{}
	}
	for k, v := range values {
		b.Query[k] = v
	}
	return b
}

func (b *URLBuilder) String() string {
	u := strings.TrimSuffix(b.Base, "/") + b.Path
	if len(b.Query) > 0 {
		u += "?" + b.Query.Encode()
	}
	return u
}
