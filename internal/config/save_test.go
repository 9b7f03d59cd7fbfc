package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAtomicKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	first := baseConfig()
	require.NoError(t, SaveAtomic(path, first))

	second := first
	second.App.Port = 40000
	require.NoError(t, SaveAtomic(path, second))

	cur, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40000, cur.App.Port)

	// The previous revision survives as .bak.
	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, first.App.Port, bak.App.Port)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveAtomicRefusesInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	bad := baseConfig()
	bad.App.Port = -1
	require.Error(t, SaveAtomic(path, bad))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
