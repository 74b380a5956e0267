package api

import (
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// Range defines a byte interval with start and end. If either start
// or end are < 0 then they will be omitted.
//
// A range serializes two different ways depending on what it is used
// for: as an HTTP Range header for partial downloads, and as start/end
// query parameters for listing pagination.
type Range struct {
	Start int64
	End   int64
}

// NewRange makes a closed Range [start,end]
func NewRange(start, end int64) *Range {
	return &Range{Start: start, End: end}
}

// RangeFrom makes an open ended Range starting at start
func RangeFrom(start int64) *Range {
	return &Range{Start: start, End: -1}
}

// RangeSuffix makes a Range covering the last n bytes
func RangeSuffix(n int64) *Range {
	return &Range{Start: -1, End: n}
}

// Header formats the range as an HTTP Range header value
// (bytes=start-end, bytes=start-, or bytes=-end for suffix ranges).
//
// A range with neither field set cannot be expressed as a header and
// is reported as an invalid argument.
func (r *Range) Header() (value string, err error) {
	if r.Start < 0 && r.End < 0 {
		return "", errors.New("range has neither start nor end")
	}
	value = "bytes="
	if r.Start >= 0 {
		value += strconv.FormatInt(r.Start, 10)
	}
	value += "-"
	if r.End >= 0 {
		value += strconv.FormatInt(r.End, 10)
	}
	return value, nil
}

// Query formats the range as pagination query parameters.
//
// A closed range becomes start=S&end=E and an end only range becomes
// end=E. The start only form becomes start=S- with a trailing hyphen:
// that is what the server contract specifies, even though it looks
// carried over from the Range header syntax rather than designed.
//
// A nil or empty range yields no parameters.
func (r *Range) Query() url.Values {
	params := url.Values{}
	if r == nil {
		return params
	}
	switch {
	case r.Start >= 0 && r.End >= 0:
		params.Set("start", strconv.FormatInt(r.Start, 10))
		params.Set("end", strconv.FormatInt(r.End, 10))
	case r.Start >= 0:
		params.Set("start", strconv.FormatInt(r.Start, 10)+"-")
	case r.End >= 0:
		params.Set("end", strconv.FormatInt(r.End, 10))
	}
	return params
}

// String formats the range into human readable form
func (r *Range) String() string {
	return "Range(" + strconv.FormatInt(r.Start, 10) + "," + strconv.FormatInt(r.End, 10) + ")"
}
