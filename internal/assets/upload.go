package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DaniilChichenkov/abik/internal/models"
)

// File is one uploaded file: the name the client gave it plus its content.
type File struct {
	Name string
	Data []byte
}

// BatchResult partitions an upload batch by outcome. Both lists keep the
// input order of the batch.
type BatchResult struct {
	Uploaded   []string `json:"uploadedSuccessfully"`
	Conflicted []string `json:"conflicted"`
}

// UploadBatch writes each file into the category's directory with an
// exclusive create. A file whose name is already taken is reported as
// conflicted and the existing file is left untouched; any other I/O error
// aborts the whole batch. Files are processed sequentially in input order so
// conflict detection stays deterministic.
func (m *Manager) UploadBatch(kind models.CategoryKind, categoryID string, files []File) (BatchResult, error) {
	dir := m.categoryDir(kind, categoryID)
	if err := m.statDir(dir); err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{
		Uploaded:   []string{},
		Conflicted: []string{},
	}

	for _, file := range files {
		// Strip any path segments the client sent along
		safeName := filepath.Base(file.Name)

		written, err := writeExclusive(filepath.Join(dir, safeName), file.Data)
		if err != nil {
			return BatchResult{}, fmt.Errorf("failed to write %s: %w", safeName, err)
		}
		if written {
			result.Uploaded = append(result.Uploaded, safeName)
		} else {
			result.Conflicted = append(result.Conflicted, safeName)
		}
	}

	return result, nil
}

// writeExclusive creates the file and writes data, failing with
// written=false if the path already exists.
func writeExclusive(path string, data []byte) (written bool, err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}
	return true, nil
}
