//go:build unix

// xposixctl 是 xoskit 的命令行工具，用于在主机或容器内检查文件与进程资源。
//
// 用法:
//
//	xposixctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config     配置文件路径（YAML/JSON）
//	--log-level      日志级别 (debug/info/warn/error，默认: warn)
//	--log-file       日志文件路径，按大小滚动；默认输出到 stderr
//	--stats          退出前输出系统调用失败统计
//
// 命令:
//
//	stat <path...>       查看文件元数据（--no-follow 不跟随符号链接）
//	cat <path>           输出文件内容
//	probe <path...>      检查访问权限（--mode 取 r/w/x/f 的组合）
//	ls <dir>             列出目录项
//	readlink <path>      读取符号链接内容
//	dup <fd>             复制描述符，用于检查描述符是否有效
//	limit [n]            查看或设置最大打开文件数
//	watch                监视 --config 文件并热加载日志级别与文件描述符上限（--count N 重载 N 次后退出）
//
// 退出码:
//
//	0: 命令执行成功
//	1: 系统调用失败或检查未通过
//	2: 参数错误（缺少参数、无效数值、未知命令等）
//
// 示例:
//
//	xposixctl stat /etc/hosts /tmp
//	xposixctl probe --mode rw /var/log/app.log
//	xposixctl --log-level debug dup 3
//	xposixctl -c /etc/xposixctl.yaml limit 65536
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	setupSignalHandler(cancel)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	s := &session{}
	return &cli.Command{
		Name:      "xposixctl",
		Usage:     "文件与进程资源检查工具",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
				Value: defaultLogLevel,
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志文件路径",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "退出前输出系统调用失败统计",
			},
		},
		Before:   s.setup,
		After:    s.teardown,
		Commands: createCommands(s),
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一处理退出码映射。
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		fmt.Fprintf(stderr, "参数错误: %v\n", err)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

// usageError 表示命令参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// exitError 表示命令已完成输出、只需设置退出码的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// isCLIUsageError 识别 urfave/cli 产生的参数解析错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, s := range []string{
		"flag provided but not defined",
		"invalid value",
		"No help topic for",
		"flag needs an argument",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
