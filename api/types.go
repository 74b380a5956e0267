// Package api has type definitions for the storage node API
package api

import (
	"fmt"
	"time"
)

const (
	// 2017-05-03T07:26:10Z
	timeFormat = `"` + time.RFC3339 + `"`
)

// Time represents date and time information for the
// storage node API, by using RFC3339
type Time time.Time

// MarshalJSON turns a Time into JSON (in UTC)
func (t *Time) MarshalJSON() (out []byte, err error) {
	timeString := (*time.Time)(t).UTC().Format(timeFormat)
	return []byte(timeString), nil
}

// UnmarshalJSON turns JSON into a Time
func (t *Time) UnmarshalJSON(data []byte) error {
	newT, err := time.Parse(timeFormat, string(data))
	if err != nil {
		return err
	}
	*t = Time(newT)
	return nil
}

// Error codes returned in the "code" field of an error response.
//
// CodeLocalError is never sent by the server - it marks failures
// which did not originate from a structured server response.
const (
	CodeInternalError       = "InternalError"
	CodeBadRequest          = "BadRequest"
	CodeNotFound            = "NotFound"
	CodeEntityExists        = "EntityExists"
	CodeNoSuchSession       = "NoSuchSession"
	CodeBadAuth             = "BadAuth"
	CodeInsufficientStorage = "InsufficientStorage"
	CodeNotEmpty            = "NotEmpty"
	CodeRangeUnsatisfiable  = "RangeUnsatisfiable"
	CodeLocalError          = "LocalError"
)

// Error is returned from the storage node when things go wrong
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"` // HTTP status code if known
	cause   error  // underlying failure for CodeLocalError
}

// Error returns a string for the error and satisfies the error interface
func (e *Error) Error() string {
	out := fmt.Sprintf("storage node error %q", e.Code)
	if e.Message != "" {
		out += ": " + e.Message
	}
	if e.cause != nil {
		out += ": " + e.cause.Error()
	}
	return out
}

// Cause returns the underlying failure for local errors, or nil
func (e *Error) Cause() error {
	return e.cause
}

// Unwrap returns the underlying failure for local errors, or nil
func (e *Error) Unwrap() error {
	return e.cause
}

// LocalError wraps a failure which did not come from a structured
// server response into an *Error with CodeLocalError
func LocalError(err error) *Error {
	return &Error{
		Code:  CodeLocalError,
		cause: err,
	}
}

// Check Error satisfies the error interface
var _ error = (*Error)(nil)

// Entity describes a file or a directory as returned by the listing
// and stat calls
type Entity struct {
	Name         string `json:"name"`
	Dir          string `json:"dir,omitempty"`    // parent directory ID, absent at bucket root
	DirID        string `json:"dir_id,omitempty"` // set iff IsDir
	Size         int64  `json:"size"`
	IsDir        bool   `json:"is_dir"`
	Creation     Time   `json:"creation"`
	LastModified Time   `json:"last_modified"`
}

// ModTime returns the modification time of the entity
func (e *Entity) ModTime() (t time.Time) {
	t = time.Time(e.LastModified)
	if t.IsZero() {
		t = time.Time(e.Creation)
	}
	return t
}

// Bucket describes a bucket with its quota and usage accounting as
// returned by the bucket info call
type Bucket struct {
	AppID        string `json:"app_id"`
	BucketID     string `json:"bucket_id"`
	Name         string `json:"name"`
	Encryption   bool   `json:"encryption"`
	AtomicUpload bool   `json:"atomic_upload"`
	Quota        int64  `json:"quota"`
	FileCount    int64  `json:"file_count"`
	SpaceTaken   int64  `json:"space_taken"`
	Creation     Time   `json:"creation"`
	Modification Time   `json:"modification"`
}

// UploadSession is returned when starting a durable upload session.
//
// The resume call returns the same shape with only Uploaded set.
type UploadSession struct {
	Code     string `json:"code,omitempty"`
	Validity int64  `json:"validity,omitempty"` // seconds
	Uploaded int64  `json:"uploaded"`
}

// StartSessionRequest is the body for starting a durable upload session
type StartSessionRequest struct {
	Size int64 `json:"size"`
}

// ResumeSessionRequest is the body for resuming a durable upload session
type ResumeSessionRequest struct {
	SessionID string `json:"session_id"`
}

// RenameRequest is the body for the file and directory rename calls
type RenameRequest struct {
	To string `json:"to"`
}

// DeleteDirectoryRequest is the body for the directory delete call
type DeleteDirectoryRequest struct {
	Recursive bool `json:"recursive"`
}
