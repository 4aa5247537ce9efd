package logfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tm := time.Date(2026, 3, 4, 17, 5, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("logs", "2026-03-04.import.log"), Filename("logs", tm, ".import"))
}

func TestNewCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	f, err := New(dir, ".import")
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b, err := os.ReadFile(Filename(dir, time.Now(), ".import"))
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(b))
}
