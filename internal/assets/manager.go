// Package assets keeps the on-disk asset tree in sync with category and
// service-item records: one directory per category, gallery images named by
// their sanitized upload name, service icons named by the owning item's
// asset key.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/models"
)

var (
	// ErrNoDirectory means the category has no asset directory on disk.
	ErrNoDirectory = errors.New("category directory does not exist")
	// ErrNoFile means the named file is absent from the category directory.
	ErrNoFile = errors.New("file does not exist")
	// ErrNotAFile means the path resolved to something other than a regular file.
	ErrNotAFile = errors.New("not a regular file")
)

type Manager struct {
	galleryRoot  string
	servicesRoot string

	galleryRoute  string
	servicesRoute string
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		galleryRoot:   cfg.GalleryRoot,
		servicesRoot:  cfg.ServicesRoot,
		galleryRoute:  cfg.GalleryRoute,
		servicesRoute: cfg.ServicesRoute,
	}
}

// Root returns the storage root for one asset kind.
func (m *Manager) Root(kind models.CategoryKind) string {
	if kind == models.KindService {
		return m.servicesRoot
	}
	return m.galleryRoot
}

func (m *Manager) route(kind models.CategoryKind) string {
	if kind == models.KindService {
		return m.servicesRoute
	}
	return m.galleryRoute
}

func (m *Manager) categoryDir(kind models.CategoryKind, categoryID string) string {
	return filepath.Join(m.Root(kind), categoryID)
}

// EnsureCategoryDir creates the category's asset directory. Succeeds if the
// directory already exists.
func (m *Manager) EnsureCategoryDir(kind models.CategoryKind, categoryID string) error {
	return os.MkdirAll(m.categoryDir(kind, categoryID), 0o755)
}

// RemoveCategoryDir recursively removes the category's asset directory.
// An already absent directory counts as success.
func (m *Manager) RemoveCategoryDir(kind models.CategoryKind, categoryID string) error {
	return os.RemoveAll(m.categoryDir(kind, categoryID))
}

// ListImages returns the public paths of every file in the category's
// directory, in filesystem enumeration order.
func (m *Manager) ListImages(kind models.CategoryKind, categoryID string) ([]string, error) {
	dir := m.categoryDir(kind, categoryID)
	if err := m.statDir(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list category directory: %w", err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		images = append(images, path.Join(m.route(kind), categoryID, entry.Name()))
	}
	return images, nil
}

// DeleteImage removes a single file from the category's directory. The
// filename is reduced to its base name so path segments in the input cannot
// escape the directory.
func (m *Manager) DeleteImage(kind models.CategoryKind, categoryID, filename string) error {
	dir := m.categoryDir(kind, categoryID)
	if err := m.statDir(dir); err != nil {
		return err
	}

	filePath := filepath.Join(dir, filepath.Base(filename))
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoFile
		}
		return fmt.Errorf("failed to stat %s: %w", filePath, err)
	}
	if !info.Mode().IsRegular() {
		return ErrNotAFile
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return ErrNoFile
		}
		return fmt.Errorf("failed to delete %s: %w", filePath, err)
	}
	return nil
}

func (m *Manager) statDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoDirectory
		}
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return ErrNoDirectory
	}
	return nil
}
