package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(&config.Config{
		GalleryRoot:   filepath.Join(t.TempDir(), "gallery"),
		ServicesRoot:  filepath.Join(t.TempDir(), "services"),
		GalleryRoute:  "/gallery",
		ServicesRoute: "/services",
	})
}

func TestEnsureCategoryDir(t *testing.T) {
	mgr := newTestManager(t)

	err := mgr.EnsureCategoryDir(models.KindGallery, "cat-1")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(mgr.Root(models.KindGallery), "cat-1"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Creating an already existing directory succeeds
	err = mgr.EnsureCategoryDir(models.KindGallery, "cat-1")
	assert.NoError(t, err)
}

func TestRemoveCategoryDirWithContents(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))
	file := filepath.Join(mgr.Root(models.KindGallery), "cat-1", "photo.jpg")
	require.NoError(t, os.WriteFile(file, []byte("jpeg bytes"), 0o644))

	err := mgr.RemoveCategoryDir(models.KindGallery, "cat-1")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(mgr.Root(models.KindGallery), "cat-1"))
	assert.True(t, os.IsNotExist(err))

	// Removing an absent directory still succeeds
	err = mgr.RemoveCategoryDir(models.KindGallery, "cat-1")
	assert.NoError(t, err)
}

func TestListImages(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))
	dir := filepath.Join(mgr.Root(models.KindGallery), "cat-1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("b"), 0o644))
	// Subdirectories are not images
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	images, err := mgr.ListImages(models.KindGallery, "cat-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"/gallery/cat-1/a.jpg",
		"/gallery/cat-1/b.png",
	}, images)
}

func TestListImagesEmptyCategory(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))

	images, err := mgr.ListImages(models.KindGallery, "cat-1")
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestListImagesMissingDirectory(t *testing.T) {
	mgr := newTestManager(t)

	_, err := mgr.ListImages(models.KindGallery, "no-such-category")
	assert.ErrorIs(t, err, ErrNoDirectory)
}

func TestDeleteImage(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))
	dir := filepath.Join(mgr.Root(models.KindGallery), "cat-1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))

	err := mgr.DeleteImage(models.KindGallery, "cat-1", "a.jpg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "a.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteImageErrors(t *testing.T) {
	mgr := newTestManager(t)

	err := mgr.DeleteImage(models.KindGallery, "no-such-category", "a.jpg")
	assert.ErrorIs(t, err, ErrNoDirectory)

	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))
	err = mgr.DeleteImage(models.KindGallery, "cat-1", "missing.jpg")
	assert.ErrorIs(t, err, ErrNoFile)

	dir := filepath.Join(mgr.Root(models.KindGallery), "cat-1")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
	err = mgr.DeleteImage(models.KindGallery, "cat-1", "subdir")
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestDeleteImageStripsPathSegments(t *testing.T) {
	mgr := newTestManager(t)

	require.NoError(t, mgr.EnsureCategoryDir(models.KindGallery, "cat-1"))
	dir := filepath.Join(mgr.Root(models.KindGallery), "cat-1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))

	// A traversal attempt only ever resolves inside the category directory
	err := mgr.DeleteImage(models.KindGallery, "cat-1", "../../a.jpg")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "a.jpg"))
	assert.True(t, os.IsNotExist(err))
}
