//go:build !unix

package xsys

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

func TestFileLimit_UnsupportedPlatform(t *testing.T) {
	var ec xerrno.Code
	TrySetFileLimit(1024, &ec)
	assert.Equal(t, xerrno.Make(int(syscall.ENOSYS)), ec)

	err := SetFileLimit(1024)
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Equal(t, ec, xerrno.FromError(err))

	ec = xerrno.Code{}
	TryGetFileLimit(&ec)
	assert.Equal(t, xerrno.Make(int(syscall.ENOSYS)), ec)

	soft, hard, err := GetFileLimit()
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
	_, ok := xerrno.AsSystemError(err)
	assert.True(t, ok)
	assert.Equal(t, ec, xerrno.FromError(err))
	assert.Zero(t, soft)
	assert.Zero(t, hard)
}
