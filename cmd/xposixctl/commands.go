//go:build unix

package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"

	"github.com/urfave/cli/v3"
	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/debug/xdiag"
	"github.com/omeyang/xoskit/pkg/os/xposix"
	"github.com/omeyang/xoskit/pkg/util/xsys"
)

// catBufSize 是 cat 每次读取的字节数。
const catBufSize = 32 << 10

// 创建所有子命令。
func createCommands(s *session) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "stat",
			Usage:     "查看文件元数据",
			ArgsUsage: "<path...>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "no-follow", Aliases: []string{"L"}, Usage: "不跟随符号链接"},
			},
			Action: func(_ context.Context, cmd *cli.Command) error {
				return cmdStat(cmd.Root().Writer, cmd.Root().ErrWriter, cmd.Args().Slice(), cmd.Bool("no-follow"))
			},
		},
		{
			Name:      "cat",
			Usage:     "输出文件内容",
			ArgsUsage: "<path>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.NArg() != 1 {
					return usagef("cat 需要且只需要一个路径")
				}
				return cmdCat(ctx, cmd.Root().Writer, cmd.Args().First())
			},
		},
		{
			Name:      "probe",
			Usage:     "检查访问权限",
			ArgsUsage: "<path...>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "r/w/x/f 的组合", Value: "f"},
			},
			Action: func(_ context.Context, cmd *cli.Command) error {
				return cmdProbe(cmd.Root().Writer, cmd.Args().Slice(), cmd.String("mode"))
			},
		},
		{
			Name:      "ls",
			Usage:     "列出目录项",
			ArgsUsage: "<dir>",
			Action: func(_ context.Context, cmd *cli.Command) error {
				if cmd.NArg() != 1 {
					return usagef("ls 需要且只需要一个目录")
				}
				return cmdLs(cmd.Root().Writer, cmd.Args().First())
			},
		},
		{
			Name:      "readlink",
			Usage:     "读取符号链接内容",
			ArgsUsage: "<path>",
			Action: func(_ context.Context, cmd *cli.Command) error {
				if cmd.NArg() != 1 {
					return usagef("readlink 需要且只需要一个路径")
				}
				target, err := xposix.ReadlinkAll(cmd.Args().First())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.Root().Writer, target)
				return err
			},
		},
		{
			Name:      "dup",
			Usage:     "复制描述符",
			ArgsUsage: "<fd>",
			Action: func(_ context.Context, cmd *cli.Command) error {
				if cmd.NArg() != 1 {
					return usagef("dup 需要一个描述符编号")
				}
				return cmdDup(cmd.Root().Writer, cmd.Args().First())
			},
		},
		{
			Name:      "limit",
			Usage:     "查看或设置最大打开文件数",
			ArgsUsage: "[n]",
			Action: func(_ context.Context, cmd *cli.Command) error {
				return cmdLimit(cmd.Root().Writer, cmd.Args().Slice())
			},
		},
		{
			Name:  "watch",
			Usage: "监视配置文件，变更时重新应用日志级别和文件描述符上限",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "count", Usage: "成功重载 N 次后退出，0 表示直到收到信号"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				count := cmd.Int("count")
				if count < 0 {
					return usagef("--count 不能为负数")
				}
				return s.watch(ctx, cmd.Root().Writer, int(count))
			},
		},
	}
}

func cmdStat(w, errW io.Writer, paths []string, noFollow bool) error {
	if len(paths) == 0 {
		return usagef("stat 需要至少一个路径")
	}
	stat := xposix.Stat
	if noFollow {
		stat = xposix.Lstat
	}

	failed := false
	for _, p := range paths {
		fi, err := stat(p)
		if err != nil {
			fmt.Fprintf(errW, "%s: %v\n", p, err)
			failed = true
			continue
		}
		fmt.Fprintf(w, "%s: type=%s mode=%s size=%d ino=%d\n",
			p, fileType(fi), xdiag.Octal(fi.Perm()).Describe(), fi.Size(), fi.Ino())
	}
	if failed {
		return &exitError{code: 1}
	}
	return nil
}

func fileType(fi *xposix.FileInfo) string {
	switch {
	case fi.IsRegular():
		return "regular"
	case fi.IsDir():
		return "directory"
	case fi.IsSymlink():
		return "symlink"
	case fi.IsFIFO():
		return "fifo"
	case fi.IsSocket():
		return "socket"
	case fi.IsCharDevice():
		return "char-device"
	case fi.IsBlockDevice():
		return "block-device"
	default:
		return "unknown"
	}
}

func cmdCat(ctx context.Context, w io.Writer, path string) error {
	fd, err := xposix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer fd.Close()

	buf := make([]byte, catBufSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := xposix.Read(fd, buf)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
}

// parseAccessMode 把 "rwx" 形式的字符串转换为 access(2) 的 mode。f 表示只检查存在。
func parseAccessMode(s string) (uint32, error) {
	if s == "" {
		return 0, usagef("mode 不能为空")
	}
	var mode uint32
	for _, c := range s {
		switch c {
		case 'r':
			mode |= unix.R_OK
		case 'w':
			mode |= unix.W_OK
		case 'x':
			mode |= unix.X_OK
		case 'f':
			mode |= unix.F_OK
		default:
			return 0, usagef("无效的 mode 字符 %q", c)
		}
	}
	return mode, nil
}

func cmdProbe(w io.Writer, paths []string, modeArg string) error {
	if len(paths) == 0 {
		return usagef("probe 需要至少一个路径")
	}
	mode, err := parseAccessMode(modeArg)
	if err != nil {
		return err
	}

	denied := false
	for _, p := range paths {
		code := xposix.Access(p, mode)
		if code.IsZero() {
			fmt.Fprintf(w, "%s: ok\n", p)
			continue
		}
		denied = true
		fmt.Fprintf(w, "%s: %s\n", p, code)
	}
	if denied {
		return &exitError{code: 1}
	}
	return nil
}

func cmdLs(w io.Writer, dir string) error {
	d, err := xposix.Opendir(dir)
	if err != nil {
		return err
	}
	defer d.Close()

	var entries []fs.DirEntry
	for {
		e, found, err := xposix.Readdir(d)
		if err != nil {
			return err
		}
		if !found {
			break
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n", typeChar(e.Type()), e.Name())
	}
	return nil
}

func typeChar(m fs.FileMode) string {
	switch {
	case m.IsDir():
		return "d"
	case m&fs.ModeSymlink != 0:
		return "l"
	case m&fs.ModeNamedPipe != 0:
		return "p"
	case m&fs.ModeSocket != 0:
		return "s"
	case m&fs.ModeDevice != 0:
		return "b"
	default:
		return "-"
	}
}

func cmdDup(w io.Writer, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return usagef("无效的描述符 %q", arg)
	}
	fd, err := xposix.DupRaw(n)
	if err != nil {
		return err
	}
	defer fd.Close()
	_, err = fmt.Fprintf(w, "%d -> %s\n", n, fd)
	return err
}

func cmdLimit(w io.Writer, args []string) error {
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil || n == 0 {
			return usagef("无效的文件数上限 %q", args[0])
		}
		if err := xsys.SetFileLimit(n); err != nil {
			return err
		}
	default:
		return usagef("limit 最多接受一个参数")
	}

	soft, hard, err := xsys.GetFileLimit()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "soft=%d hard=%d\n", soft, hard)
	return err
}
