// Package node implements the low level client for the storage node
// REST API.
//
// Every exported method issues exactly one HTTP exchange and addresses
// the remote explicitly by application and bucket identifiers. The
// Connector in the root package curries those identifiers away for
// callers working against a single bucket.
package node

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/stornode/stornode/api"
	"github.com/stornode/stornode/lib/rest"
)

// Client is a storage node API client
type Client struct {
	srv *rest.Client // the connection to the server
}

// New creates a storage node API client talking to rootURL.
//
// The token is installed once as a bearer Authorization header; every
// request carries it. The http.Client passed in owns all transport
// policy (timeouts, TLS, proxies).
func New(client *http.Client, rootURL, token string) *Client {
	srv := rest.NewClient(client).SetRoot(rootURL).SetErrorHandler(errorHandler)
	if token != "" {
		srv.SetHeader("Authorization", "Bearer "+token)
	}
	return &Client{srv: srv}
}

// Resource addresses a file or directory on a storage node as an
// (application, bucket, path) triple
type Resource struct {
	App    string
	Bucket string
	Path   string
}

// route returns the escaped {app}/{bucket}/{path} URL suffix
func (r Resource) route() string {
	out := url.PathEscape(r.App) + "/" + url.PathEscape(r.Bucket)
	if r.Path != "" {
		out += "/" + escapePath(r.Path)
	}
	return out
}

// escapePath escapes the segments of p keeping the separating slashes
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}
	return strings.Join(segments, "/")
}

// File is a downloaded file: metadata parsed from the response headers
// plus the body stream.
//
// The caller must close Body. Size is -1 when the server did not
// declare a length.
type File struct {
	Name     string // from the Content-Disposition filename
	MimeType string // from Content-Type
	Size     int64  // from Content-Length
	Body     io.ReadCloser
}

// Close closes the underlying body stream
func (f *File) Close() error {
	return f.Body.Close()
}

// errorHandler parses a non 2xx error response into an error.
//
// Bodies carrying a recognized {"code": ...} become an *api.Error with
// that code; everything else collapses to CodeLocalError.
func errorHandler(resp *http.Response) error {
	body, err := rest.ReadBody(resp)
	if err != nil {
		logrus.Debugf("storage node: couldn't read error response: %v", err)
	}
	apiErr := new(api.Error)
	if err := json.Unmarshal(body, apiErr); err != nil || !knownCodes[apiErr.Code] {
		return api.LocalError(errors.Errorf("HTTP error %v (%v) returned body: %q", resp.StatusCode, resp.Status, body))
	}
	apiErr.Status = resp.StatusCode
	return apiErr
}

// DownloadFile fetches the file addressed by res, optionally restricted
// to a byte range.
//
// The returned File streams the payload - the caller must close it. A
// range the server cannot satisfy comes back as a RangeUnsatisfiable
// error; a range with neither start nor end is a caller mistake and is
// reported without reaching the server.
func (c *Client) DownloadFile(ctx context.Context, res Resource, rng *api.Range) (*File, error) {
	opts := rest.Opts{
		Method: "GET",
		Path:   "/api/file/download/" + res.route(),
	}
	if rng != nil {
		value, err := rng.Header()
		if err != nil {
			return nil, err
		}
		opts.ExtraHeaders = map[string]string{"Range": value}
	}
	resp, err := c.srv.Call(ctx, &opts)
	if err != nil {
		return nil, translateError(err)
	}
	file := &File{
		MimeType: resp.Header.Get("Content-Type"),
		Size:     resp.ContentLength,
		Body:     resp.Body,
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			file.Name = params["filename"]
		}
	}
	return file, nil
}

// UploadFile stores size bytes read from in as the file addressed by
// res in a single exchange.
//
// The server discards any partial artifact if in yields a different
// number of bytes than declared.
func (c *Client) UploadFile(ctx context.Context, res Resource, in io.Reader, size int64) error {
	opts := rest.Opts{
		Method:        "POST",
		Path:          "/api/file/upload/oneshot/" + res.route(),
		Body:          in,
		ContentType:   "application/octet-stream",
		ContentLength: &size,
		NoResponse:    true,
	}
	_, err := c.srv.Call(ctx, &opts)
	return translateError(err)
}

// StartUploadSession begins a durable (resumable) upload of size bytes
// for the file addressed by res.
//
// This uses the same endpoint as UploadFile but sends a JSON body
// instead of a raw payload - the server tells the two apart by content
// type.
func (c *Client) StartUploadSession(ctx context.Context, res Resource, size int64) (*api.UploadSession, error) {
	logrus.Debugf("storage node: starting upload session for %q (%d bytes)", res.Path, size)
	opts := rest.Opts{
		Method: "POST",
		Path:   "/api/file/upload/oneshot/" + res.route(),
	}
	var session api.UploadSession
	_, err := c.srv.CallJSON(ctx, &opts, &api.StartSessionRequest{Size: size}, &session)
	if err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

// PutFile appends a chunk of size bytes to the active upload session
func (c *Client) PutFile(ctx context.Context, app, bucket, session string, chunk io.Reader, size int64) error {
	opts := rest.Opts{
		Method:        "PUT",
		Path:          "/api/file/upload/put/" + url.PathEscape(app) + "/" + url.PathEscape(bucket) + "/" + url.PathEscape(session),
		Body:          chunk,
		ContentType:   "application/octet-stream",
		ContentLength: &size,
		NoResponse:    true,
	}
	_, err := c.srv.Call(ctx, &opts)
	return translateError(err)
}

// ResumeUploadSession asks the server how many bytes of the session
// have been stored so far, so an interrupted upload can continue from
// that offset
func (c *Client) ResumeUploadSession(ctx context.Context, app, bucket, session string) (uploaded int64, err error) {
	opts := rest.Opts{
		Method: "POST",
		Path:   "/api/file/upload/resume/" + url.PathEscape(app) + "/" + url.PathEscape(bucket),
	}
	var result api.UploadSession
	_, err = c.srv.CallJSON(ctx, &opts, &api.ResumeSessionRequest{SessionID: session}, &result)
	if err != nil {
		return 0, translateError(err)
	}
	return result.Uploaded, nil
}

// RenameFile renames the file addressed by res to newName
func (c *Client) RenameFile(ctx context.Context, res Resource, newName string) error {
	return c.rename(ctx, "/api/file/rename/", res, newName)
}

// RenameDirectory renames the directory addressed by res to newName
func (c *Client) RenameDirectory(ctx context.Context, res Resource, newName string) error {
	return c.rename(ctx, "/api/directory/rename/", res, newName)
}

func (c *Client) rename(ctx context.Context, endpoint string, res Resource, newName string) error {
	opts := rest.Opts{
		Method:     "POST",
		Path:       endpoint + res.route(),
		NoResponse: true,
	}
	_, err := c.srv.CallJSON(ctx, &opts, &api.RenameRequest{To: newName}, nil)
	return translateError(err)
}

// DeleteFile removes the file addressed by res
func (c *Client) DeleteFile(ctx context.Context, res Resource) error {
	opts := rest.Opts{
		Method:     "DELETE",
		Path:       "/api/file/delete/" + res.route(),
		NoResponse: true,
	}
	_, err := c.srv.Call(ctx, &opts)
	return translateError(err)
}

// DeleteDirectory removes the directory addressed by res. Deleting a
// non empty directory needs recursive set or the server refuses with
// NotEmpty; the flag is passed through unmodified.
func (c *Client) DeleteDirectory(ctx context.Context, res Resource, recursive bool) error {
	opts := rest.Opts{
		Method:     "DELETE",
		Path:       "/api/directory/delete/" + res.route(),
		NoResponse: true,
	}
	_, err := c.srv.CallJSON(ctx, &opts, &api.DeleteDirectoryRequest{Recursive: recursive}, nil)
	return translateError(err)
}

// CreateDirectory creates the directory addressed by res
func (c *Client) CreateDirectory(ctx context.Context, res Resource) error {
	opts := rest.Opts{
		Method:     "POST",
		Path:       "/api/directory/create/" + res.route(),
		NoResponse: true,
	}
	_, err := c.srv.Call(ctx, &opts)
	return translateError(err)
}

// ListBucketFiles lists the files of a bucket in server order,
// optionally restricted by a pagination range
func (c *Client) ListBucketFiles(ctx context.Context, app, bucket string, rng *api.Range) ([]api.Entity, error) {
	return c.list(ctx, "/api/bucket/list/files/"+url.PathEscape(app)+"/"+url.PathEscape(bucket), rng)
}

// ListBucketDirectories lists the directories of a bucket in server
// order, optionally restricted by a pagination range
func (c *Client) ListBucketDirectories(ctx context.Context, app, bucket string, rng *api.Range) ([]api.Entity, error) {
	return c.list(ctx, "/api/bucket/list/directories/"+url.PathEscape(app)+"/"+url.PathEscape(bucket), rng)
}

// ListDirectory lists the entries of the directory addressed by res in
// server order, optionally restricted by a pagination range
func (c *Client) ListDirectory(ctx context.Context, res Resource, rng *api.Range) ([]api.Entity, error) {
	return c.list(ctx, "/api/directory/list/"+res.route(), rng)
}

// list runs a listing call, preserving the server provided order
func (c *Client) list(ctx context.Context, path string, rng *api.Range) ([]api.Entity, error) {
	opts := rest.Opts{
		Method:     "GET",
		Path:       path,
		Parameters: rng.Query(),
	}
	var entities []api.Entity
	_, err := c.srv.CallJSON(ctx, &opts, nil, &entities)
	if err != nil {
		return nil, translateError(err)
	}
	return entities, nil
}

// StatResource describes the file or directory addressed by res
func (c *Client) StatResource(ctx context.Context, res Resource) (*api.Entity, error) {
	opts := rest.Opts{
		Method: "GET",
		Path:   "/api/bucket/stat/" + res.route(),
	}
	var entity api.Entity
	_, err := c.srv.CallJSON(ctx, &opts, nil, &entity)
	if err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

// FetchBucketInfo fetches the bucket description with its quota and
// usage accounting
func (c *Client) FetchBucketInfo(ctx context.Context, app, bucket string) (*api.Bucket, error) {
	opts := rest.Opts{
		Method: "GET",
		Path:   "/api/bucket/info/" + url.PathEscape(app) + "/" + url.PathEscape(bucket),
	}
	var info api.Bucket
	_, err := c.srv.CallJSON(ctx, &opts, nil, &info)
	if err != nil {
		return nil, translateError(err)
	}
	return &info, nil
}
