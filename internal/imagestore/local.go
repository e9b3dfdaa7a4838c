package imagestore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MountPath is where the router serves files written by Local.
const MountPath = "/uploads"

// Local writes images below a directory and serves them from MountPath.
// Meant for development; Cloudinary is the production store.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local image store: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory the router should expose at MountPath.
func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Upload(ctx context.Context, img Image, namespace string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := path.Join(namespace, "product-"+uuid.New().String()+img.Ext())
	full := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("local image store: %w", err)
	}
	if err := os.WriteFile(full, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("local image store: %w", err)
	}
	return l.baseURL + MountPath + "/" + key, nil
}

func (l *Local) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, err := l.keyFromURL(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("local image store: %s not found", key)
		}
		return fmt.Errorf("local image store: %w", err)
	}
	return nil
}

// keyFromURL returns the object key ("namespace/file.ext") below MountPath.
func (l *Local) keyFromURL(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", ErrInvalidReference
	}
	key, ok := strings.CutPrefix(u.Path, MountPath+"/")
	if !ok || key == "" {
		return "", ErrInvalidReference
	}
	key = path.Clean(key)
	if strings.HasPrefix(key, "..") || path.IsAbs(key) {
		return "", ErrInvalidReference
	}
	return key, nil
}
