// Package stornode is a client library for a remote storage node
// service.
//
// A Connector binds an access token and an application/bucket pair
// once and exposes the full operation set against paths inside that
// bucket. The lower level node.Client underneath addresses buckets
// explicitly and can be used directly when working across buckets.
//
// The library performs no retries and holds no state between calls;
// cancellation and timeouts belong to the context and http.Client the
// caller supplies.
package stornode

import (
	"context"
	"io"
	"net/http"

	"github.com/stornode/stornode/api"
	"github.com/stornode/stornode/node"
)

// Config defines the fixed identity of a Connector
type Config struct {
	Token    string       // bearer token sent on every request
	App      string       // application identifier
	Bucket   string       // bucket identifier
	Host     string       // host[:port] of the storage node
	UseHTTPS bool         // talk TLS to the node
	Client   *http.Client // optional transport, defaults to http.DefaultClient
}

// endpoint returns the base URL for the configured node
func (c Config) endpoint() string {
	scheme := "http"
	if c.UseHTTPS {
		scheme = "https"
	}
	return scheme + "://" + c.Host
}

// Connector is a facade over node.Client with the application and
// bucket identifiers bound at construction.
//
// It owns no state of its own and is safe for concurrent use.
type Connector struct {
	opt Config
	srv *node.Client
}

// New creates a Connector from the config
func New(opt Config) *Connector {
	client := opt.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Connector{
		opt: opt,
		srv: node.New(client, opt.endpoint(), opt.Token),
	}
}

// Node returns the underlying accessor for operations outside the
// bound bucket
func (c *Connector) Node() *node.Client {
	return c.srv
}

// resource pairs the bound identifiers with a caller supplied path
func (c *Connector) resource(path string) node.Resource {
	return node.Resource{App: c.opt.App, Bucket: c.opt.Bucket, Path: path}
}

// DownloadFile fetches a file, optionally restricted to a byte range.
// The caller must close the returned File.
func (c *Connector) DownloadFile(ctx context.Context, path string, rng *api.Range) (*node.File, error) {
	return c.srv.DownloadFile(ctx, c.resource(path), rng)
}

// UploadFile stores size bytes read from in at path
func (c *Connector) UploadFile(ctx context.Context, path string, in io.Reader, size int64) error {
	return c.srv.UploadFile(ctx, c.resource(path), in, size)
}

// StartUploadSession begins a durable upload of size bytes at path
func (c *Connector) StartUploadSession(ctx context.Context, path string, size int64) (*api.UploadSession, error) {
	return c.srv.StartUploadSession(ctx, c.resource(path), size)
}

// PutFile appends a chunk of size bytes to an active upload session
func (c *Connector) PutFile(ctx context.Context, session string, chunk io.Reader, size int64) error {
	return c.srv.PutFile(ctx, c.opt.App, c.opt.Bucket, session, chunk, size)
}

// ResumeUploadSession returns how many bytes of the session the node
// has stored so far
func (c *Connector) ResumeUploadSession(ctx context.Context, session string) (int64, error) {
	return c.srv.ResumeUploadSession(ctx, c.opt.App, c.opt.Bucket, session)
}

// RenameFile renames the file at path to newName
func (c *Connector) RenameFile(ctx context.Context, path, newName string) error {
	return c.srv.RenameFile(ctx, c.resource(path), newName)
}

// RenameDirectory renames the directory at path to newName
func (c *Connector) RenameDirectory(ctx context.Context, path, newName string) error {
	return c.srv.RenameDirectory(ctx, c.resource(path), newName)
}

// DeleteFile removes the file at path
func (c *Connector) DeleteFile(ctx context.Context, path string) error {
	return c.srv.DeleteFile(ctx, c.resource(path))
}

// DeleteDirectory removes the directory at path, recursively if asked
func (c *Connector) DeleteDirectory(ctx context.Context, path string, recursive bool) error {
	return c.srv.DeleteDirectory(ctx, c.resource(path), recursive)
}

// CreateDirectory creates a directory at path
func (c *Connector) CreateDirectory(ctx context.Context, path string) error {
	return c.srv.CreateDirectory(ctx, c.resource(path))
}

// ListFiles lists the files of the bound bucket in server order
func (c *Connector) ListFiles(ctx context.Context, rng *api.Range) ([]api.Entity, error) {
	return c.srv.ListBucketFiles(ctx, c.opt.App, c.opt.Bucket, rng)
}

// ListDirectories lists the directories of the bound bucket in server order
func (c *Connector) ListDirectories(ctx context.Context, rng *api.Range) ([]api.Entity, error) {
	return c.srv.ListBucketDirectories(ctx, c.opt.App, c.opt.Bucket, rng)
}

// ListDirectory lists the entries of the directory at path in server order
func (c *Connector) ListDirectory(ctx context.Context, path string, rng *api.Range) ([]api.Entity, error) {
	return c.srv.ListDirectory(ctx, c.resource(path), rng)
}

// Stat describes the file or directory at path
func (c *Connector) Stat(ctx context.Context, path string) (*api.Entity, error) {
	return c.srv.StatResource(ctx, c.resource(path))
}

// BucketInfo fetches the bound bucket with its quota and usage
func (c *Connector) BucketInfo(ctx context.Context) (*api.Bucket, error) {
	return c.srv.FetchBucketInfo(ctx, c.opt.App, c.opt.Bucket)
}
