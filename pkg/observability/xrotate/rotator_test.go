package xrotate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLumberjack_Validation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.log")

	tests := []struct {
		name string
		file string
		opts []Option
		want error
	}{
		{"empty filename", "", nil, ErrEmptyFilename},
		{"zero size", file, []Option{WithMaxSize(0)}, ErrInvalidMaxSize},
		{"size too large", file, []Option{WithMaxSize(maxSizeMB + 1)}, ErrInvalidMaxSize},
		{"negative backups", file, []Option{WithMaxBackups(-1)}, ErrInvalidMaxBackups},
		{"age too large", file, []Option{WithMaxAge(maxAgeDays + 1)}, ErrInvalidMaxAge},
		{"no cleanup", file, []Option{WithMaxBackups(0), WithMaxAge(0)}, ErrNoCleanupPolicy},
		{"setuid mode", file, []Option{WithFileMode(0o4644)}, ErrInvalidFileMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewLumberjack(tt.file, tt.opts...)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewLumberjack_NilOptionIgnored(t *testing.T) {
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "app.log"), nil, WithCompress(false))
	require.NoError(t, err)
	require.NoError(t, r.Close())
}

func TestNewLumberjack_CreatesParents(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a", "b", "c", "app.log")

	r, err := NewLumberjack(file, WithCompress(false))
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	fi, err := os.Stat(filepath.Dir(file))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	n, err := r.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestNewLumberjack_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := NewLumberjack(filepath.Join(blocker, "app.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create directory")

	_, err = NewLumberjack(filepath.Join(blocker, "sub", "app.log"))
	require.Error(t, err)
}

func TestLumberjack_FileMode(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	r, err := NewLumberjack(file, WithFileMode(0o644), WithCompress(false))
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, err = r.Write([]byte("x"))
	require.NoError(t, err)

	fi, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	require.NoError(t, r.Rotate())
	fi, err = os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())
}

func TestLumberjack_Rotate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "app.log")

	r, err := NewLumberjack(file, WithCompress(false), WithLocalTime(true))
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	_, err = r.Write([]byte("first\n"))
	require.NoError(t, err)
	require.NoError(t, r.Rotate())
	_, err = r.Write([]byte("second\n"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestLumberjack_Closed(t *testing.T) {
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "app.log"))
	require.NoError(t, err)

	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Close(), ErrClosed)

	_, err = r.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Rotate(), ErrClosed)
}

func TestLumberjack_OnError(t *testing.T) {
	origChmod := chmodFile
	defer func() { chmodFile = origChmod }()

	errChmod := errors.New("chmod denied")
	chmodFile = func(string, uint32) error { return errChmod }

	var got []error
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "app.log"),
		WithFileMode(0o644),
		WithOnError(func(err error) { got = append(got, err) }),
	)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	// 写入成功，权限错误只通过回调报告
	_, err = r.Write([]byte("a"))
	require.NoError(t, err)
	_, err = r.Write([]byte("b"))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0], errChmod)
}

func TestLumberjack_OnErrorPanicRecovered(t *testing.T) {
	origPerm := filePerm
	defer func() { filePerm = origPerm }()
	filePerm = func(string) (uint32, bool, error) { return 0, false, errors.New("stat failed") }

	r, err := NewLumberjack(filepath.Join(t.TempDir(), "app.log"),
		WithFileMode(0o640),
		WithOnError(func(error) { panic("boom") }),
	)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	assert.NotPanics(t, func() {
		_, err = r.Write([]byte("x"))
	})
	assert.NoError(t, err)
}
