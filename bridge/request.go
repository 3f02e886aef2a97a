package bridge

import (
	"net/http"
	"net/url"
)

const (
	headerForwardedHost  = "X-Forwarded-Host"
	headerForwardedProto = "X-Forwarded-Proto"

	defaultProto = "https"
)

// Request is the part of an incoming HTTP request the bridge looks at.
type Request struct {
	Path   string
	Host   string
	Header http.Header
	Query  url.Values
}

func RequestFromHTTP(r *http.Request) Request {
	return Request{
		Path:   r.URL.Path,
		Host:   r.Host,
		Header: r.Header,
		Query:  r.URL.Query(),
	}
}

// PublicHost is the client-facing host: X-Forwarded-Host, else Host.
func (r Request) PublicHost() string {
	if host := r.Header.Get(headerForwardedHost); host != "" {
		return host
	}
	if host := r.Header.Get("Host"); host != "" {
		return host
	}
	return r.Host
}

// PublicProto is the client-facing scheme: X-Forwarded-Proto, else https.
func (r Request) PublicProto() string {
	if proto := r.Header.Get(headerForwardedProto); proto != "" {
		return proto
	}
	return defaultProto
}

// Response is a fully formed reply. Body is written as-is.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func textResponse(status int, body string) Response {
	return Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
		Body:       []byte(body),
	}
}

func (resp Response) Write(w http.ResponseWriter) {
	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}
