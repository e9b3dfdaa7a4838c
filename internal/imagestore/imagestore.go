// Package imagestore holds product images outside the database. Records keep
// only the URL returned by Upload; everything needed to delete the object is
// derived from that URL.
package imagestore

import (
	"context"
	"errors"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrInvalidReference = errors.New("invalid image reference")
	ErrUnsupportedImage = errors.New("only jpeg, jpg and png images are allowed")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Image is an uploaded file held in memory.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Ext returns the lowercased file extension including the dot, or "".
func (i Image) Ext() string {
	return strings.ToLower(path.Ext(i.Filename))
}

// Validate sniffs the content and sets ContentType. The client's declared
// type is ignored; both content and extension must be jpeg or png.
func (i *Image) Validate() error {
	mt := mimetype.Detect(i.Data)
	if !allowedTypes[mt.String()] || !allowedExts[i.Ext()] {
		return ErrUnsupportedImage
	}
	i.ContentType = mt.String()
	return nil
}

// Store is an external object store addressed by URL.
type Store interface {
	// Upload stores img under namespace and returns its public URL.
	Upload(ctx context.Context, img Image, namespace string) (string, error)
	// Delete removes the object behind a URL previously returned by Upload.
	Delete(ctx context.Context, ref string) error
}

var versionSegment = regexp.MustCompile(`^v\d+/`)

// PublicID derives the "namespace/name" identifier from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v1712/farmer-products/product-abc.jpg.
// URLs without an /upload/ segment fall back to their last two path segments.
func PublicID(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "", ErrInvalidReference
	}

	p := u.Path
	if i := strings.Index(p, "/upload/"); i >= 0 {
		p = versionSegment.ReplaceAllString(p[i+len("/upload/"):], "")
	} else {
		segs := strings.Split(strings.Trim(p, "/"), "/")
		if len(segs) > 2 {
			segs = segs[len(segs)-2:]
		}
		p = strings.Join(segs, "/")
	}

	p = strings.TrimSuffix(p, path.Ext(p))
	if p == "" || strings.Contains(p, "..") {
		return "", ErrInvalidReference
	}
	return p, nil
}
