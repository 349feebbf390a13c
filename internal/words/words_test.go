package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid("horse"))
	assert.False(t, Valid("HORSE"))
	assert.False(t, Valid("ab"))
	assert.False(t, Valid("horses"))
	assert.False(t, Valid("hors3"))
	assert.False(t, Valid("héros"))
}

func TestNewNormalizes(t *testing.T) {
	l, err := New([]string{" Horse ", "horse", "toolong", "crane", "", "ab1cd"})
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains("HORSE"))
	assert.True(t, l.Contains("crane"))
	assert.False(t, l.Contains("toolong"))
}

func TestNewEmpty(t *testing.T) {
	_, err := New([]string{"nope", "12345"})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadEmbedded(t *testing.T) {
	l, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, l.Len(), 10)
	assert.True(t, l.Contains("horse"))
	assert.True(t, l.Contains(l.RandomAnswer()))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple\nGRAPE\nbad\n"), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "apple", l.At(0))
	assert.Equal(t, "grape", l.At(3))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
