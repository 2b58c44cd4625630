package xproc

import (
	"os"
	"path/filepath"
	"sync"
)

// 测试中替换。
var osExecutable = os.Executable

var processName = sync.OnceValue(resolveProcessName)

// ProcessID 返回当前进程 ID。
func ProcessID() int { return os.Getpid() }

// ProcessName 返回可执行文件名（不含目录），首次调用后缓存，包括空结果。
//
// 依次尝试 [os.Executable] 和 os.Args[0]，都无效时返回空字符串。
func ProcessName() string { return processName() }

func resolveProcessName() string {
	var candidates []string
	if exe, err := osExecutable(); err == nil {
		candidates = append(candidates, exe)
	}
	if len(os.Args) > 0 {
		candidates = append(candidates, os.Args[0])
	}
	for _, c := range candidates {
		if name := baseName(c); name != "" {
			return name
		}
	}
	return ""
}

// baseName 对空路径和 filepath.Base 的特殊结果（"."、".."、分隔符）返回空字符串。
func baseName(path string) string {
	if path == "" {
		return ""
	}
	switch name := filepath.Base(path); name {
	case ".", "..", string(filepath.Separator):
		return ""
	default:
		return name
	}
}
