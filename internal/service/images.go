package service

import (
	"bitwise74/medflow-api/pkg/util"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ImageStore keeps uploaded images and hands out their public URLs
type ImageStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// Upload is an image that was already validated by the HTTP layer
type Upload struct {
	Body        io.Reader
	ContentType string
	Extension   string
}

// LocalImages stores images on disk. The directory is served statically
// under publicURL.
type LocalImages struct {
	dir       string
	publicURL string
}

func NewLocalImages(dir, publicURL string) (*LocalImages, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory, %w", err)
	}

	return &LocalImages{
		dir:       dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (l *LocalImages) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	p := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(p)
		return "", fmt.Errorf("failed to write %s, %w", key, err)
	}

	return l.publicURL + "/" + key, nil
}

func (l *LocalImages) Delete(_ context.Context, url string) error {
	key, ok := strings.CutPrefix(url, l.publicURL+"/")
	if !ok || key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("url %q is not served from this store", url)
	}

	return os.Remove(filepath.Join(l.dir, filepath.FromSlash(key)))
}

func putImage(ctx context.Context, s ImageStore, folder string, u *Upload) (string, error) {
	key := folder + "/" + util.RandStr(16) + u.Extension

	url, err := s.Put(ctx, key, u.Body, u.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to store image, %w", err)
	}

	return url, nil
}

// dropImage deletes a stored image. Failures are logged only, the owning
// record is already gone or updated.
func dropImage(ctx context.Context, s ImageStore, url *string) {
	if url == nil || *url == "" {
		return
	}

	if err := s.Delete(ctx, *url); err != nil {
		zap.L().Warn("Failed to delete stored image", zap.Error(err), zap.String("url", *url))
	}
}
