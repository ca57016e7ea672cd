package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid magic bytes, enough for content sniffing.
var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R'}
	jpegBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00")
)

func TestParseIconChange(t *testing.T) {
	file := &File{Name: "icon.png", Data: pngBytes}

	change, err := ParseIconChange("", nil)
	require.NoError(t, err)
	assert.Equal(t, IconKeep, change.Op)

	change, err = ParseIconChange("unset", file)
	require.NoError(t, err)
	assert.Equal(t, IconKeep, change.Op)

	change, err = ParseIconChange("delete", nil)
	require.NoError(t, err)
	assert.Equal(t, IconRemove, change.Op)

	change, err = ParseIconChange("change", file)
	require.NoError(t, err)
	assert.Equal(t, IconReplace, change.Op)
	assert.Equal(t, "icon.png", change.File.Name)
}

func TestParseIconChangeInvalid(t *testing.T) {
	// "change" without a file is an error
	_, err := ParseIconChange("change", nil)
	assert.ErrorIs(t, err, ErrInvalidIconChange)

	_, err = ParseIconChange("change", &File{Name: "empty.png"})
	assert.ErrorIs(t, err, ErrInvalidIconChange)

	_, err = ParseIconChange("bogus", nil)
	assert.ErrorIs(t, err, ErrInvalidIconChange)
}

func TestApplyIconChangeReplace(t *testing.T) {
	mgr := newTestManager(t)

	newPath, err := mgr.ApplyIconChange("cat-1", "key-1", "", IconChange{
		Op:   IconReplace,
		File: File{Name: "upload.png", Data: pngBytes},
	})
	require.NoError(t, err)
	assert.Equal(t, "/services/cat-1/key-1.png", newPath)

	data, err := os.ReadFile(filepath.Join(mgr.Root("service"), "cat-1", "key-1.png"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestApplyIconChangeReplaceRemovesOldIcon(t *testing.T) {
	mgr := newTestManager(t)

	oldPath, err := mgr.ApplyIconChange("cat-1", "key-1", "", IconChange{
		Op:   IconReplace,
		File: File{Name: "old.png", Data: pngBytes},
	})
	require.NoError(t, err)

	newPath, err := mgr.ApplyIconChange("cat-1", "key-1", oldPath, IconChange{
		Op:   IconReplace,
		File: File{Name: "new.jpg", Data: jpegBytes},
	})
	require.NoError(t, err)
	assert.Equal(t, "/services/cat-1/key-1.jpg", newPath)

	// The old extension's file is gone
	_, err = os.Stat(filepath.Join(mgr.Root("service"), "cat-1", "key-1.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(mgr.Root("service"), "cat-1", "key-1.jpg"))
	assert.NoError(t, err)
}

func TestApplyIconChangeSuspiciousMime(t *testing.T) {
	mgr := newTestManager(t)

	// Content sniffing rejects a text payload whatever the extension says
	current := "/services/cat-1/key-1.png"
	newPath, err := mgr.ApplyIconChange("cat-1", "key-1", current, IconChange{
		Op:   IconReplace,
		File: File{Name: "fake.png", Data: []byte("#!/bin/sh\nrm -rf /\n")},
	})
	assert.ErrorIs(t, err, ErrSuspiciousMime)
	assert.Equal(t, current, newPath)
}

func TestApplyIconChangeAllowedFormats(t *testing.T) {
	mgr := newTestManager(t)

	cases := []struct {
		name string
		data []byte
		ext  string
	}{
		{"icon.png", pngBytes, ".png"},
		{"icon.jpeg", jpegBytes, ".jpg"},
		{"icon.gif", gifBytes, ".gif"},
	}
	for i, tc := range cases {
		key := string(rune('a' + i))
		newPath, err := mgr.ApplyIconChange("cat-1", key, "", IconChange{
			Op:   IconReplace,
			File: File{Name: tc.name, Data: tc.data},
		})
		require.NoError(t, err, tc.name)
		assert.Equal(t, "/services/cat-1/"+key+tc.ext, newPath, tc.name)
	}
}

func TestApplyIconChangeRemove(t *testing.T) {
	mgr := newTestManager(t)

	current, err := mgr.ApplyIconChange("cat-1", "key-1", "", IconChange{
		Op:   IconReplace,
		File: File{Name: "icon.png", Data: pngBytes},
	})
	require.NoError(t, err)

	newPath, err := mgr.ApplyIconChange("cat-1", "key-1", current, IconChange{Op: IconRemove})
	require.NoError(t, err)
	assert.Equal(t, "", newPath)

	_, err = os.Stat(filepath.Join(mgr.Root("service"), "cat-1", "key-1.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestApplyIconChangeKeep(t *testing.T) {
	mgr := newTestManager(t)

	newPath, err := mgr.ApplyIconChange("cat-1", "key-1", "/services/cat-1/key-1.png", IconChange{Op: IconKeep})
	require.NoError(t, err)
	assert.Equal(t, "/services/cat-1/key-1.png", newPath)
}

func TestRemoveIconTolerant(t *testing.T) {
	mgr := newTestManager(t)

	// Empty path and already-deleted file both succeed
	assert.NoError(t, mgr.RemoveIcon(""))
	assert.NoError(t, mgr.RemoveIcon("/services/cat-1/gone.png"))

	// Repeated removal stays successful
	current, err := mgr.ApplyIconChange("cat-1", "key-1", "", IconChange{
		Op:   IconReplace,
		File: File{Name: "icon.png", Data: pngBytes},
	})
	require.NoError(t, err)
	assert.NoError(t, mgr.RemoveIcon(current))
	assert.NoError(t, mgr.RemoveIcon(current))
}

func TestRemoveIconMalformedPath(t *testing.T) {
	mgr := newTestManager(t)

	err := mgr.RemoveIcon("/services/only-one-segment")
	assert.Error(t, err)
}
