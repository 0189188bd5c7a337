package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// DiskStore writes uploads under Root/<case_id>/ and serves them at
// BaseURL/<case_id>/<stored name>.
type DiskStore struct {
	Root    string
	BaseURL string
}

func (d DiskStore) Save(ctx context.Context, caseID, filename string, size int64, r io.Reader) (models.FileRef, error) {
	dir := filepath.Join(d.Root, caseID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.FileRef{}, err
	}

	name := sanitize(filename)
	stored := uuid.NewString() + "_" + name
	path := filepath.Join(dir, stored)

	f, err := os.Create(path)
	if err != nil {
		return models.FileRef{}, err
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return models.FileRef{}, err
	}
	if size > 0 && written != size {
		_ = os.Remove(path)
		return models.FileRef{}, fmt.Errorf("short write: %d of %d bytes", written, size)
	}

	return models.FileRef{
		URL:  strings.TrimSuffix(d.BaseURL, "/") + "/" + caseID + "/" + stored,
		Name: name,
		Size: written,
	}, nil
}

func (d DiskStore) Remove(ctx context.Context, ref models.FileRef) error {
	rel := strings.TrimPrefix(ref.URL, strings.TrimSuffix(d.BaseURL, "/")+"/")
	if rel == ref.URL || rel == "" {
		return fmt.Errorf("file reference outside store: %s", ref.URL)
	}
	path := filepath.Join(d.Root, filepath.FromSlash(rel))
	if !strings.HasPrefix(path, filepath.Clean(d.Root)+string(os.PathSeparator)) {
		return fmt.Errorf("file reference outside store: %s", ref.URL)
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(os.PathSeparator) || name == "" {
		name = "upload"
	}
	return name
}
