package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/radarmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestIsNotFound(t *testing.T) {
	missing := pkgerrors.NewAPIError("stations", "https://example.com/nexrad-stations.txt", 404, "Not Found")
	wrapped := pkgerrors.WrapResource("fetch", "stations", "", missing)
	assert.True(t, pkgerrors.IsNotFound(wrapped))
	assert.False(t, pkgerrors.IsNotFound(errors.New("other")))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "lod",
			Message: "must be positive",
		}
		assert.Equal(t, "validation failed for field lod: must be positive", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		unavailable bool
		notFound    bool
		temporary   bool
	}{
		{name: "not found", status: 404, notFound: true},
		{name: "forbidden", status: 403},
		{name: "rate limited", status: 429, temporary: true},
		{name: "server error", status: 503, unavailable: true, temporary: true},
		{name: "transport failure", status: 0, temporary: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("stations", "https://example.com/nexrad-stations.txt", tt.status, "boom")
			assert.True(t, pkgerrors.IsRetrievalError(err))
			assert.Equal(t, tt.unavailable, errors.Is(err, pkgerrors.ErrSourceUnavailable))
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(err))
			assert.Equal(t, tt.temporary, err.Temporary())
		})
	}

	t.Run("message includes status", func(t *testing.T) {
		err := pkgerrors.NewAPIError("availability", "https://example.com/grlevel2.cfg", 500, "Internal Server Error")
		assert.Equal(t, "failed to download availability from https://example.com/grlevel2.cfg (status 500): Internal Server Error", err.Error())
	})

	t.Run("unwraps cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &pkgerrors.APIError{Source: "stations", URL: "http://x", Message: cause.Error(), Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to download stations from http://x: connection refused", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad url")
	err := pkgerrors.NewConfigError("stations_url", "must be a URL", cause)
	assert.Equal(t, "configuration error in stations_url: must be a URL", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, pkgerrors.IsValidationError(err))

	bare := &pkgerrors.ConfigError{Message: "missing"}
	assert.Equal(t, "configuration error: missing", bare.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "nexrad", Line: 12, Message: "invalid latitude"}
		assert.Equal(t, "nexrad parse error on line 12: invalid latitude", err.Error())
		assert.True(t, pkgerrors.IsParseError(err))
	})

	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "locations", File: "aweather-location.c", Line: 40, Message: "bad tuple"}
		assert.Equal(t, "parse error in locations at aweather-location.c:40: bad tuple", err.Error())
	})

	t.Run("wrap keeps cause", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := pkgerrors.WrapParse("grlevel2", "grlevel2.cfg", cause)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "parse error in grlevel2 file grlevel2.cfg: unexpected EOF", err.Error())
	})
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := pkgerrors.NewIOError("write", "/tmp/out.c", cause)
	assert.Equal(t, "IO error during write of /tmp/out.c: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestResourceError(t *testing.T) {
	cause := errors.New("timeout")
	err := pkgerrors.NewResourceError("fetch", "stations", "", cause)
	assert.Equal(t, "failed to fetch stations: timeout", err.Error())

	withID := pkgerrors.NewResourceError("parse", "locations", "KABR", cause)
	assert.Equal(t, "failed to parse locations KABR: timeout", withID.Error())
	assert.ErrorIs(t, withID, cause)
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("load", "config", "", nil))
	assert.NoError(t, pkgerrors.WrapParse("nexrad", "", nil))

	err := pkgerrors.WrapIO("rename", "aweather-location.c", fmt.Errorf("wrapped: %w", pkgerrors.ErrCanceled))
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.False(t, pkgerrors.IsTimeout(err))
}
