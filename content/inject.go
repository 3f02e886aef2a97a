package content

import (
	"bytes"
	"io"
	"strings"

	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	AttrPage   = "data-cms-page"
	AttrKey    = "data-cms-key"
	AttrFormat = "data-cms-format"

	FormatMarkdown = "markdown"
)

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func walk(n *html.Node, fn func(*html.Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	_ = walk(doc, func(n *html.Node) error {
		if body == nil && n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
		}
		return nil
	})
	return body
}

// PageKey returns the body's data-cms-page value.
func PageKey(page []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", errors.Wrapf(err, "parse page")
	}
	body := findBody(doc)
	if body == nil {
		return "", errors.ErrNoPageKey
	}
	key, ok := attr(body, AttrPage)
	if !ok || key == "" {
		return "", errors.ErrNoPageKey
	}
	return key, nil
}

// Inject replaces the children of every data-cms-key element whose key is in
// the bundle. Elements with unknown keys are left alone.
func Inject(r io.Reader, bundle Bundle) ([]byte, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "parse page")
	}

	var targets []*html.Node
	_ = walk(doc, func(n *html.Node) error {
		if n.Type != html.ElementNode {
			return nil
		}
		if key, ok := attr(n, AttrKey); ok {
			if _, ok := bundle[key]; ok {
				targets = append(targets, n)
			}
		}
		return nil
	})

	for _, n := range targets {
		key, _ := attr(n, AttrKey)
		if err := fill(n, bundle[key]); err != nil {
			return nil, errors.Wrapf(err, "fill %q", key)
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, errors.Wrapf(err, "render page")
	}
	return buf.Bytes(), nil
}

func fill(n *html.Node, value string) error {
	var children []*html.Node
	if format, _ := attr(n, AttrFormat); format == FormatMarkdown {
		nodes, err := html.ParseFragment(strings.NewReader(MarkdownLite(value)), n)
		if err != nil {
			return err
		}
		children = nodes
	} else {
		children = []*html.Node{{Type: html.TextNode, Data: value}}
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return nil
}
