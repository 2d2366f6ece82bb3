package gcs

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/h2non/filetype"
	"google.golang.org/api/option"
)

// Adapter uploads files to a Cloud Storage bucket.
type Adapter struct {
	client *storage.Client
	bucket string
	prefix string
}

// New creates a storage client. Without credentialsFile the client uses
// application default credentials.
func New(ctx context.Context, bucket, prefix, credentialsFile string) (*Adapter, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Adapter{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (a *Adapter) Close() error { return a.client.Close() }

// Publish streams localPath to <prefix>/<key> and returns the object's public URL.
func (a *Adapter) Publish(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	name := objectName(a.prefix, key)
	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType(localPath)

	if written, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload gs://%s/%s after %d bytes: %w", a.bucket, name, written, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize gs://%s/%s: %w", a.bucket, name, err)
	}
	return PublicURL(a.bucket, name), nil
}

// PublicURL is the https address of an object in a publicly readable bucket.
func PublicURL(bucket, name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "https://storage.googleapis.com/" + bucket + "/" + strings.Join(parts, "/")
}

func objectName(prefix, key string) string {
	key = strings.TrimLeft(filepath.ToSlash(key), "/")
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

// contentType sniffs the file header, falling back to the extension for the
// text artifacts that carry no magic number.
func contentType(localPath string) string {
	if kind, err := filetype.MatchFile(localPath); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".ass":
		return "text/x-ssa"
	}
	return "application/octet-stream"
}
