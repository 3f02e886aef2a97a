package content

import (
	"bytes"
	"encoding/json"

	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
)

// Bundle is a flat content-key to value mapping.
type Bundle map[string]string

type ResultStatus int

const (
	ResultIgnored ResultStatus = iota
	ResultLoaded
)

func (s ResultStatus) String() string {
	if s == ResultLoaded {
		return "loaded"
	}
	return "ignored"
}

// Result is the outcome of loading a bundle. Ignored results carry the reason
// for logging only; callers continue with the page untouched.
type Result struct {
	Status ResultStatus
	Bundle Bundle
	Reason error
}

func Loaded(b Bundle) Result {
	return Result{Status: ResultLoaded, Bundle: b}
}

func Ignored(reason error) Result {
	return Result{Status: ResultIgnored, Reason: reason}
}

func (r Result) IsLoaded() bool {
	return r.Status == ResultLoaded
}

// DecodeBundle parses a bundle. Anything other than a JSON object of strings
// is rejected as a whole.
func DecodeBundle(data []byte) (Bundle, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(errors.ErrInvalidBundle, err)
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrInvalidBundle, "null bundle")
	}

	bundle := make(Bundle, len(raw))
	for k, v := range raw {
		var s string
		if !bytes.HasPrefix(bytes.TrimSpace(v), []byte(`"`)) || json.Unmarshal(v, &s) != nil {
			return nil, errors.Wrapf(errors.ErrInvalidBundle, "key %q is not a string", k)
		}
		bundle[k] = s
	}
	return bundle, nil
}
