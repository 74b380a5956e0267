package node

import (
	"github.com/pkg/errors"

	"github.com/stornode/stornode/api"
)

// knownCodes is the closed set of error codes the server may report.
// Anything outside it is treated as an unstructured failure.
var knownCodes = map[string]bool{
	api.CodeInternalError:       true,
	api.CodeBadRequest:          true,
	api.CodeNotFound:            true,
	api.CodeEntityExists:        true,
	api.CodeNoSuchSession:       true,
	api.CodeBadAuth:             true,
	api.CodeInsufficientStorage: true,
	api.CodeNotEmpty:            true,
	api.CodeRangeUnsatisfiable:  true,
}

// translateError normalizes a failure from the transport layer into an
// *api.Error. Structured server errors pass through unchanged; anything
// else (connection failures, undecodable bodies) becomes an *api.Error
// with CodeLocalError wrapping the original failure.
//
// This is the only place the error taxonomy is decided - callers never
// see raw transport failures.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.Cause(err).(*api.Error); ok {
		return err
	}
	return api.LocalError(err)
}

// ErrorCode returns the storage node error code carried by err, or the
// empty string if err carries none
func ErrorCode(err error) string {
	if apiErr, ok := errors.Cause(err).(*api.Error); ok {
		return apiErr.Code
	}
	return ""
}

// IsNotFound reports whether the server said the resource is absent
func IsNotFound(err error) bool {
	return ErrorCode(err) == api.CodeNotFound
}

// IsEntityExists reports whether the server said the target already exists
func IsEntityExists(err error) bool {
	return ErrorCode(err) == api.CodeEntityExists
}

// IsNotEmpty reports whether the server refused to delete a non empty directory
func IsNotEmpty(err error) bool {
	return ErrorCode(err) == api.CodeNotEmpty
}

// IsNoSuchSession reports whether the server does not know the upload session
func IsNoSuchSession(err error) bool {
	return ErrorCode(err) == api.CodeNoSuchSession
}

// IsBadAuth reports whether the server rejected the bearer token
func IsBadAuth(err error) bool {
	return ErrorCode(err) == api.CodeBadAuth
}

// IsRangeUnsatisfiable reports whether the server rejected the byte range
func IsRangeUnsatisfiable(err error) bool {
	return ErrorCode(err) == api.CodeRangeUnsatisfiable
}

// IsLocalError reports whether the failure did not come from a
// structured server response
func IsLocalError(err error) bool {
	return ErrorCode(err) == api.CodeLocalError
}
