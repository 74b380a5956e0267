package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeHeader(t *testing.T) {
	for _, test := range []struct {
		in   Range
		want string
	}{
		{Range{Start: 0, End: 99}, "bytes=0-99"},
		{Range{Start: 5, End: 7}, "bytes=5-7"},
		{Range{Start: 5, End: -1}, "bytes=5-"},
		{Range{Start: -1, End: 20}, "bytes=-20"},
	} {
		got, err := test.in.Header()
		require.NoError(t, err, test.in.String())
		assert.Equal(t, test.want, got, test.in.String())
	}
}

func TestRangeHeaderEmpty(t *testing.T) {
	r := Range{Start: -1, End: -1}
	_, err := r.Header()
	require.Error(t, err)
}

func TestRangeQuery(t *testing.T) {
	for _, test := range []struct {
		in   *Range
		want url.Values
	}{
		{NewRange(2, 5), url.Values{"start": {"2"}, "end": {"5"}}},
		// the start only form keeps a trailing hyphen - server contract
		{RangeFrom(5), url.Values{"start": {"5-"}}},
		{RangeSuffix(20), url.Values{"end": {"20"}}},
		{&Range{Start: -1, End: -1}, url.Values{}},
		{nil, url.Values{}},
	} {
		assert.Equal(t, test.want, test.in.Query())
	}
}

func TestRangeQueryEncodesEmpty(t *testing.T) {
	var r *Range
	assert.Equal(t, "", r.Query().Encode())
}

func TestRangeConstructors(t *testing.T) {
	assert.Equal(t, &Range{Start: 2, End: 5}, NewRange(2, 5))
	assert.Equal(t, &Range{Start: 5, End: -1}, RangeFrom(5))
	assert.Equal(t, &Range{Start: -1, End: 20}, RangeSuffix(20))
}
