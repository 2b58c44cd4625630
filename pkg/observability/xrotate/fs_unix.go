//go:build unix

package xrotate

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
	"github.com/omeyang/xoskit/pkg/os/xposix"
)

var (
	errNoEnt = xerrno.Make(int(unix.ENOENT))
	errExist = xerrno.Make(int(unix.EEXIST))
)

// 文件系统操作变量，测试中替换以覆盖错误路径。不可与 t.Parallel() 混用。
var (
	filePerm  = statPerm
	chmodFile = chmod
)

func statPerm(path string) (perm uint32, exists bool, err error) {
	var ec xerrno.Code
	fi := xposix.TryStat(path, &ec)
	switch {
	case ec.IsZero():
		return fi.Perm() & 0o777, true, nil
	case ec == errNoEnt:
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("xrotate: stat %s: %w", path, ec.Err())
	}
}

func chmod(path string, mode uint32) error {
	var ec xerrno.Code
	xposix.TryChmod(path, mode, &ec)
	if !ec.IsZero() {
		return fmt.Errorf("xrotate: chmod %s: %w", path, ec.Err())
	}
	return nil
}

// ensureDir 逐级创建 dir。已存在但不是目录时返回 ENOTDIR。
func ensureDir(dir string) error {
	var ec xerrno.Code
	xposix.TryMkdir(dir, 0o750, &ec)
	switch {
	case ec.IsZero():
		return nil
	case ec == errExist:
		var sc xerrno.Code
		if fi := xposix.TryStat(dir, &sc); sc.IsZero() && !fi.IsDir() {
			return fmt.Errorf("xrotate: create directory %s: %w", dir, unix.ENOTDIR)
		}
		return nil
	case ec == errNoEnt:
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if err := ensureDir(parent); err != nil {
			return err
		}
		ec = xerrno.Code{}
		if xposix.TryMkdir(dir, 0o750, &ec); ec.IsZero() || ec == errExist {
			return nil
		}
	}
	return fmt.Errorf("xrotate: create directory %s: %w", dir, ec.Err())
}
