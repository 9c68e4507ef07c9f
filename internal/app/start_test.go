package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tm "github.com/davidchappy/pathman/internal/tilemap"
)

func TestLoadMaze(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	t.Run("default", func(t *testing.T) {
		bp, err := LoadMaze("")
		require.NoError(t, err)
		assert.Equal(t, "classic", bp.Name)
	})

	t.Run("text file", func(t *testing.T) {
		bp, err := LoadMaze(write("tiny.txt", "#####\n#P.G#\n#####\n"))
		require.NoError(t, err)
		assert.Equal(t, "tiny", bp.Name)
		assert.Len(t, bp.Cells, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMaze(filepath.Join(dir, "nope.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no player", func(t *testing.T) {
		_, err := LoadMaze(write("empty.txt", "#####\n#..G#\n#####\n"))
		assert.ErrorIs(t, err, tm.ErrNoPlayerSpawn)
	})
}
