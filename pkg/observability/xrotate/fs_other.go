//go:build !unix

package xrotate

import (
	"errors"
	"io/fs"
	"os"
)

var (
	filePerm  = statPerm
	chmodFile = chmod
)

func statPerm(path string) (uint32, bool, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint32(fi.Mode().Perm()), true, nil
}

func chmod(path string, mode uint32) error {
	return os.Chmod(path, fs.FileMode(mode))
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o750)
}
