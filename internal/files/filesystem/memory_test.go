package filesystem

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_WalkOrderAndRelativePaths(t *testing.T) {
	mfs := NewMemoryFileSystem("/data/song_data")
	mfs.AddFile("B/TRB.json", "{}")
	mfs.AddFile("A/B/TRA.json", "{}")
	mfs.AddFile("A/TRC.json", "{}")

	dir, err := mfs.Open("/data/song_data")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(f File, err error) error {
		require.NoError(t, err)
		if !f.Info().IsDir() {
			files = append(files, f.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A/B/TRA.json", "A/TRC.json", "B/TRB.json"}, files)
}

func TestMemoryFileSystem_ReadFileAndStat(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("log_data/2018-11-01-events.json", `{"page":"Home"}`)

	content, err := mfs.ReadFile("/data/log_data/2018-11-01-events.json")
	require.NoError(t, err)
	assert.Equal(t, `{"page":"Home"}`, string(content))

	info, err := mfs.Stat("log_data")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = mfs.ReadFile("log_data")
	assert.Error(t, err)

	_, err = mfs.ReadFile("missing.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFileSystem_OpenErrors(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.json", "{}")

	_, err := mfs.Open("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = mfs.Open("a.json")
	assert.ErrorContains(t, err, "not a directory")
}

func TestMemoryFileSystem_WalkStopsOnCallbackPanic(t *testing.T) {
	mfs := NewMemoryFileSystem("/data")
	mfs.AddFile("a.json", "{}")

	dir, err := mfs.Open(".")
	require.NoError(t, err)

	err = dir.Walk(func(File, error) error { panic("boom") })
	assert.ErrorContains(t, err, "walk callback panicked")
}
