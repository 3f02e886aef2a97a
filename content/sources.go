package content

import (
	"github.com/jrsteele09/decap-oauth-bridge/internal/config"
	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
)

// Sources maps a page identifier to the site path of its bundle.
type Sources map[string]string

func DefaultSources() Sources {
	return Sources{
		"home":  "/content/home.json",
		"about": "/content/about.json",
	}
}

// LoadSources reads a YAML sources file, or returns DefaultSources when path
// is empty.
func LoadSources(path string) (Sources, error) {
	if path == "" {
		return DefaultSources(), nil
	}
	cs, err := config.LoadContentSources(path)
	if err != nil {
		return nil, errors.Join(errors.ErrInvalidSources, err)
	}
	return Sources(cs.Pages), nil
}

func (s Sources) Path(page string) (string, bool) {
	if page == "" {
		return "", false
	}
	p, ok := s[page]
	return p, ok
}
