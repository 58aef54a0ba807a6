package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/media/", zerolog.Nop())
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "photo.png", "image/png", strings.NewReader("fake-png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/media/photo_"), "reference %q should keep the original stem", ref)
	assert.True(t, strings.HasSuffix(ref, ".png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(content))
}

func TestFileStore_SaveUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/media/", zerolog.Nop())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "same.jpg", "image/jpeg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "same.jpg", "image/jpeg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileStore_SaveCancelledContext(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "/media/", zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "photo.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectName(t *testing.T) {
	name := objectName("my picture.webp")
	assert.True(t, strings.HasPrefix(name, "my_picture_"))
	assert.True(t, strings.HasSuffix(name, ".webp"))

	// Path components must not escape the media directory.
	name = objectName("../../etc/passwd")
	assert.False(t, strings.Contains(name, "/"))
}
