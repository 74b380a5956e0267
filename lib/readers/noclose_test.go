package readers

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

type readCloser struct {
	*bytes.Buffer
	closed bool
}

func (rc *readCloser) Close() error {
	rc.closed = true
	return nil
}

func TestNoCloser(t *testing.T) {
	// nil passes through
	assert.Nil(t, NoCloser(nil))

	// a plain io.Reader passes through unchanged
	buf := bytes.NewBufferString("potato")
	assert.Equal(t, buf, NoCloser(buf))

	// an io.ReadCloser gets wrapped so it can't be closed
	rc := &readCloser{Buffer: bytes.NewBufferString("potato")}
	wrapped := NoCloser(rc)
	assert.NotEqual(t, rc, wrapped)
	data, err := ioutil.ReadAll(wrapped)
	assert.NoError(t, err)
	assert.Equal(t, "potato", string(data))
	_, canClose := wrapped.(interface{ Close() error })
	assert.False(t, canClose)
	assert.False(t, rc.closed)
}
