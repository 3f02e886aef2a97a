package errors_test

import (
	"fmt"
	"testing"

	"github.com/jrsteele09/decap-oauth-bridge/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, errors.Wrapf(nil, "context %d", 1))

	err := errors.Wrapf(errors.ErrUpstream, "exchange code for %s", "github")
	require.EqualError(t, err, "exchange code for github: token endpoint request failed")
	require.True(t, errors.Is(err, errors.ErrUpstream))
	require.False(t, errors.Is(err, errors.ErrMissingCode))
}

func TestJoinKeepsBothChains(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := errors.Join(errors.ErrUpstream, cause)
	require.True(t, errors.Is(err, errors.ErrUpstream))
	require.True(t, errors.Is(err, cause))
}
