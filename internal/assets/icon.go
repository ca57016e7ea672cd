package assets

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrSuspiciousMime means the file content does not match any allowed
	// image type, whatever its extension claims.
	ErrSuspiciousMime = errors.New("file content is not an allowed image type")
	// ErrInvalidIconChange means the intention flag and the attached file do
	// not form a valid combination.
	ErrInvalidIconChange = errors.New("invalid icon change")
)

// Icons are validated against file content, not extension.
var allowedIconMimes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"image/avif",
}

type IconOp int

const (
	IconKeep IconOp = iota
	IconReplace
	IconRemove
)

// IconChange is the parsed form of the intention flag sent with an item
// update: keep the icon as is, replace it with a new file, or remove it.
type IconChange struct {
	Op   IconOp
	File File
}

// ParseIconChange maps the wire-level intention flag onto a tagged variant.
// The "change" intention requires a file; "delete" and "unset" must not
// depend on one.
func ParseIconChange(intention string, file *File) (IconChange, error) {
	switch intention {
	case "", "unset":
		return IconChange{Op: IconKeep}, nil
	case "delete":
		return IconChange{Op: IconRemove}, nil
	case "change":
		if file == nil || len(file.Data) == 0 {
			return IconChange{}, ErrInvalidIconChange
		}
		return IconChange{Op: IconReplace, File: *file}, nil
	default:
		return IconChange{}, ErrInvalidIconChange
	}
}

// sniffIconExt validates the file content against the icon allow-list and
// returns the extension to store it under: the sniffed one when known,
// otherwise the extension of the uploaded filename.
func sniffIconExt(file File) (string, error) {
	mime := mimetype.Detect(file.Data)

	for _, allowed := range allowedIconMimes {
		if mime.Is(allowed) {
			ext := mime.Extension()
			if ext == "" {
				ext = strings.ToLower(filepath.Ext(file.Name))
			}
			return ext, nil
		}
	}
	return "", ErrSuspiciousMime
}

// ApplyIconChange performs the file side of an icon transition and returns
// the item's new icon path. currentPath is the item's stored public icon
// path ("" when it has none); assetKey names the icon file regardless of the
// item's database id.
func (m *Manager) ApplyIconChange(categoryID, assetKey, currentPath string, change IconChange) (string, error) {
	switch change.Op {
	case IconKeep:
		return currentPath, nil

	case IconRemove:
		if err := m.RemoveIcon(currentPath); err != nil {
			return currentPath, err
		}
		return "", nil

	case IconReplace:
		ext, err := sniffIconExt(change.File)
		if err != nil {
			return currentPath, err
		}
		if err := m.RemoveIcon(currentPath); err != nil {
			return currentPath, err
		}

		dir := filepath.Join(m.servicesRoot, categoryID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return currentPath, fmt.Errorf("failed to create icon directory: %w", err)
		}

		filename := assetKey + ext
		if err := os.WriteFile(filepath.Join(dir, filename), change.File.Data, 0o644); err != nil {
			return currentPath, fmt.Errorf("failed to write icon: %w", err)
		}
		return path.Join(m.servicesRoute, categoryID, filename), nil

	default:
		return currentPath, ErrInvalidIconChange
	}
}

// RemoveIcon deletes the file behind a public icon path. A missing file or
// an empty path counts as success so removal stays idempotent.
func (m *Manager) RemoveIcon(publicPath string) error {
	if publicPath == "" {
		return nil
	}

	rel := strings.TrimPrefix(publicPath, m.servicesRoute)
	rel = strings.TrimPrefix(rel, "/")
	parts := strings.Split(rel, "/")
	if len(parts) != 2 {
		return fmt.Errorf("malformed icon path %q", publicPath)
	}

	diskPath := filepath.Join(m.servicesRoot, filepath.Base(parts[0]), filepath.Base(parts[1]))
	if err := os.Remove(diskPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete icon %s: %w", diskPath, err)
	}
	return nil
}
