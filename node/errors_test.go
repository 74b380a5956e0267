package node

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stornode/stornode/api"
)

func TestServerErrorCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"NotFound","message":"no such file"}`))
	})

	_, err := c.StatResource(context.Background(), testResource)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, api.CodeNotFound, ErrorCode(err))

	apiErr, ok := errors.Cause(err).(*api.Error)
	require.True(t, ok)
	assert.Equal(t, "no such file", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestServerErrorNoBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.StatResource(context.Background(), testResource)
	require.Error(t, err)
	assert.True(t, IsLocalError(err))
	assert.False(t, IsNotFound(err))
}

func TestServerErrorUnknownCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"code":"Wibble","message":"???"}`))
	})

	_, err := c.StatResource(context.Background(), testResource)
	require.Error(t, err)
	// unrecognized codes collapse to the local catch-all
	assert.True(t, IsLocalError(err))
}

func TestTransportError(t *testing.T) {
	// a client pointed at nothing fails before any response arrives
	broken := New(http.DefaultClient, "http://127.0.0.1:1", "sausage")

	_, err := broken.StatResource(context.Background(), testResource)
	require.Error(t, err)
	assert.True(t, IsLocalError(err))
	assert.NotNil(t, errors.Cause(err).(*api.Error).Cause())
}

func TestErrorCodePlainError(t *testing.T) {
	assert.Equal(t, "", ErrorCode(errors.New("potato")))
	assert.Equal(t, "", ErrorCode(nil))
	assert.False(t, IsNotFound(nil))
}

func TestErrorPredicates(t *testing.T) {
	for _, test := range []struct {
		code string
		pred func(error) bool
	}{
		{api.CodeNotFound, IsNotFound},
		{api.CodeEntityExists, IsEntityExists},
		{api.CodeNotEmpty, IsNotEmpty},
		{api.CodeNoSuchSession, IsNoSuchSession},
		{api.CodeBadAuth, IsBadAuth},
		{api.CodeRangeUnsatisfiable, IsRangeUnsatisfiable},
	} {
		err := error(&api.Error{Code: test.code})
		assert.True(t, test.pred(err), test.code)
		assert.True(t, test.pred(errors.Wrap(err, "wrapped")), test.code)
		assert.False(t, test.pred(error(&api.Error{Code: api.CodeInternalError})), test.code)
	}
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))

	apiErr := &api.Error{Code: api.CodeBadRequest}
	assert.Equal(t, error(apiErr), translateError(apiErr))

	plain := errors.New("potato")
	translated := translateError(plain)
	assert.True(t, IsLocalError(translated))
	assert.Equal(t, plain, errors.Cause(translated).(*api.Error).Cause())
}
