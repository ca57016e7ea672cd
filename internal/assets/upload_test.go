package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaniilChichenkov/abik/internal/models"
)

func TestUploadBatchAllNew(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))

	result, err := mgr.UploadBatch(models.KindGallery, "cat-1", []File{
		{Name: "a.jpg", Data: []byte("aaa")},
		{Name: "b.jpg", Data: []byte("bbb")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, result.Uploaded)
	assert.Empty(t, result.Conflicted)

	data, err := os.ReadFile(filepath.Join(mgr.Root(models.KindGallery), "cat-1", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), data)
}

func TestUploadBatchConflictLeavesExistingUntouched(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))

	dir := filepath.Join(mgr.Root(models.KindGallery), "cat-1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.jpg"), []byte("original"), 0o644))

	result, err := mgr.UploadBatch(models.KindGallery, "cat-1", []File{
		{Name: "new.jpg", Data: []byte("fresh")},
		{Name: "existing.jpg", Data: []byte("overwrite attempt")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"new.jpg"}, result.Uploaded)
	assert.Equal(t, []string{"existing.jpg"}, result.Conflicted)

	// The conflicted file's bytes are untouched
	data, err := os.ReadFile(filepath.Join(dir, "existing.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), data)
}

func TestUploadBatchPartitionsEveryFile(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))

	dir := filepath.Join(mgr.Root(models.KindGallery), "cat-1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("old"), 0o644))

	files := []File{
		{Name: "a.jpg", Data: []byte("1")},
		{Name: "b.jpg", Data: []byte("2")},
		{Name: "c.jpg", Data: []byte("3")},
	}
	result, err := mgr.UploadBatch(models.KindGallery, "cat-1", files)
	require.NoError(t, err)

	// Every input lands in exactly one list, input order preserved
	assert.Equal(t, len(files), len(result.Uploaded)+len(result.Conflicted))
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, result.Uploaded)
	assert.Equal(t, []string{"b.jpg"}, result.Conflicted)
}

func TestUploadBatchEmptyInput(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))

	result, err := mgr.UploadBatch(models.KindGallery, "cat-1", nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Uploaded)
	assert.NotNil(t, result.Conflicted)
	assert.Empty(t, result.Uploaded)
	assert.Empty(t, result.Conflicted)
}

func TestUploadBatchMissingDirectory(t *testing.T) {
	mgr := newTestManager(t)

	_, err := mgr.UploadBatch(models.KindGallery, "no-such-category", []File{
		{Name: "a.jpg", Data: []byte("aaa")},
	})
	assert.ErrorIs(t, err, ErrNoDirectory)
}

func TestUploadBatchSanitizesFilenames(t *testing.T) {
	mgr := newTestManager(t)
	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))

	result, err := mgr.UploadBatch(models.KindGallery, "cat-1", []File{
		{Name: "../../escape.jpg", Data: []byte("payload")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"escape.jpg"}, result.Uploaded)

	// The file lands inside the category directory, not above it
	_, err = os.Stat(filepath.Join(mgr.Root(models.KindGallery), "cat-1", "escape.jpg"))
	assert.NoError(t, err)
}
