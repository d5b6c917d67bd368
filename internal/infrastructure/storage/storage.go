// Package storage persists uploaded catalog images on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shopfront/storefront/internal/core/ports"
)

// UploadDir is the key prefix under which every image is stored.
const UploadDir = "uploads"

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures a driver.
type Config struct {
	Driver string

	LocalRoot string // directory that contains UploadDir

	S3Bucket   string
	S3Region   string
	S3Endpoint string // empty for AWS
	S3Key      string
	S3Secret   string
	S3URL      string // public base URL; derived from bucket and region when empty
}

// New builds the ImageStore for cfg.Driver.
func New(ctx context.Context, cfg Config) (ports.ImageStore, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocalStore(cfg.LocalRoot), nil
	case DriverS3:
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// newKey returns a collision-free object key that keeps the upload's extension.
func newKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return path.Join(UploadDir, uuid.NewString()+ext)
}

// keyFromPath maps a stored image reference back to its key. References are
// either "/uploads/<name>" or "<base-url>/uploads/<name>". Only the final
// element is kept so a reference can never escape UploadDir.
func keyFromPath(ref string) (string, bool) {
	i := strings.LastIndex(ref, "/"+UploadDir+"/")
	if i < 0 {
		return "", false
	}
	name := path.Base(ref[i+len(UploadDir)+2:])
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", false
	}
	return path.Join(UploadDir, name), true
}
