package rest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall(t *testing.T) {
	var gotReq *http.Request
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		gotBody, _ = ReadBody(&http.Response{Body: r.Body})
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	defer ts.Close()

	c := NewClient(ts.Client()).SetRoot(ts.URL).SetHeader("Authorization", "Bearer sausage")

	length := int64(6)
	opts := Opts{
		Method:        "POST",
		Path:          "/some/path",
		Body:          bytes.NewBufferString("potato"),
		ContentType:   "application/octet-stream",
		ContentLength: &length,
		ExtraHeaders:  map[string]string{"X-Thing": "yes"},
		Parameters:    url.Values{"start": {"5-"}},
	}
	resp, err := c.Call(context.Background(), &opts)
	require.NoError(t, err)
	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	assert.Equal(t, "POST", gotReq.Method)
	assert.Equal(t, "/some/path", gotReq.URL.Path)
	assert.Equal(t, "start=5-", gotReq.URL.RawQuery)
	assert.Equal(t, "Bearer sausage", gotReq.Header.Get("Authorization"))
	assert.Equal(t, "application/octet-stream", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, "yes", gotReq.Header.Get("X-Thing"))
	assert.Equal(t, int64(6), gotReq.ContentLength)
	assert.Equal(t, "potato", string(gotBody))
}

func TestCallNoRootURL(t *testing.T) {
	c := NewClient(http.DefaultClient)
	_, err := c.Call(context.Background(), &Opts{Method: "GET", Path: "/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RootURL not set")
}

func TestCallErrorHandler(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	handled := false
	c := NewClient(ts.Client()).SetRoot(ts.URL).SetErrorHandler(func(resp *http.Response) error {
		handled = true
		body, err := ReadBody(resp)
		require.NoError(t, err)
		assert.Equal(t, "boom\n", string(body))
		return assert.AnError
	})

	_, err := c.Call(context.Background(), &Opts{Method: "GET", Path: "/"})
	assert.Equal(t, assert.AnError, err)
	assert.True(t, handled)
}

func TestCallJSON(t *testing.T) {
	type request struct {
		To string `json:"to"`
	}
	type response struct {
		OK bool `json:"ok"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := ReadBody(&http.Response{Body: r.Body})
		require.NoError(t, err)
		assert.JSONEq(t, `{"to":"new.txt"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c := NewClient(ts.Client()).SetRoot(ts.URL)
	var result response
	_, err := c.CallJSON(context.Background(), &Opts{Method: "POST", Path: "/rename"}, &request{To: "new.txt"}, &result)
	require.NoError(t, err)
	assert.True(t, result.OK)
}

func TestCallJSONNoResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(ts.Client()).SetRoot(ts.URL)
	resp, err := c.CallJSON(context.Background(), &Opts{Method: "POST", Path: "/", NoResponse: true}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRemoveHeader(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header
	}))
	defer ts.Close()

	c := NewClient(ts.Client()).SetRoot(ts.URL).SetHeader("X-Thing", "yes")
	c.RemoveHeader("X-Thing")
	_, err := c.Call(context.Background(), &Opts{Method: "GET", Path: "/", NoResponse: true})
	require.NoError(t, err)
	assert.Equal(t, "", got.Get("X-Thing"))
}
