package xlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/omeyang/xoskit/pkg/observability/xrotate"
	"github.com/omeyang/xoskit/pkg/util/xproc"
)

// Builder 日志配置构建器。第一个配置错误会保留到 Build 返回。
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	replace   func(groups []string, a slog.Attr) slog.Attr
	enrich    bool
	attrs     []slog.Attr
	rotator   xrotate.Rotator
	onError   func(error)
	err       error
}

// New 创建构建器：stderr、info 级别、text 格式。
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
		enrich:   true,
	}
}

func (b *Builder) setErr(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// SetOutput 设置输出目标，覆盖之前的 SetRotation。
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if w == nil {
		return b.setErr(ErrNilOutput)
	}
	b.output = w
	return b
}

func (b *Builder) SetLevel(level slog.Level) *Builder {
	b.levelVar.Set(level)
	return b
}

// SetLevelString 通过字符串设置级别，见 [ParseLevel]。
func (b *Builder) SetLevelString(s string) *Builder {
	level, err := ParseLevel(s)
	if err != nil {
		return b.setErr(err)
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json，空值视为 text。
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "":
		b.format = "text"
	case "text", "json":
		b.format = normalized
	default:
		return b.setErr(fmt.Errorf("%w: %q", ErrUnknownFormat, format))
	}
	return b
}

func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetReplaceAttr 设置属性替换函数，返回空 Key 的属性会被移除。
func (b *Builder) SetReplaceAttr(fn func(groups []string, a slog.Attr) slog.Attr) *Builder {
	b.replace = fn
	return b
}

// SetEnrich 是否从 context 注入 trace_id/span_id，默认启用。
func (b *Builder) SetEnrich(enable bool) *Builder {
	b.enrich = enable
	return b
}

// SetRotation 输出到按大小轮转的文件，cleanup 负责关闭。
func (b *Builder) SetRotation(filename string, opts ...xrotate.Option) *Builder {
	rotator, err := xrotate.NewLumberjack(filename, opts...)
	if err != nil {
		return b.setErr(err)
	}
	if b.rotator != nil {
		_ = b.rotator.Close()
	}
	b.rotator = rotator
	b.output = rotator
	return b
}

// SetProcessAttrs 为每条日志添加 process 和 pid 固定属性。
func (b *Builder) SetProcessAttrs() *Builder {
	return b.SetAttrs(
		slog.String("process", xproc.ProcessName()),
		slog.Int("pid", xproc.ProcessID()),
	)
}

// SetAttrs 追加固定属性，Build 时一次性注入。
func (b *Builder) SetAttrs(attrs ...slog.Attr) *Builder {
	b.attrs = append(b.attrs, attrs...)
	return b
}

// SetOnError 设置写入失败回调。回调同步执行，应保持轻量。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	b.onError = fn
	return b
}

// Build 返回 logger、动态级别和清理函数。清理函数可重复调用。
func (b *Builder) Build() (*slog.Logger, *slog.LevelVar, func() error, error) {
	if b.err != nil {
		if b.rotator != nil {
			_ = b.rotator.Close()
		}
		return nil, nil, nil, b.err
	}

	opts := &slog.HandlerOptions{
		Level:       b.levelVar,
		AddSource:   b.addSource,
		ReplaceAttr: b.replace,
	}
	var handler slog.Handler
	if b.format == "json" {
		handler = slog.NewJSONHandler(b.output, opts)
	} else {
		handler = slog.NewTextHandler(b.output, opts)
	}
	if b.enrich {
		handler = &EnrichHandler{base: handler}
	}
	if b.onError != nil {
		handler = newErrorHandler(handler, b.onError)
	}
	if len(b.attrs) > 0 {
		handler = handler.WithAttrs(b.attrs)
	}

	var once sync.Once
	rotator := b.rotator
	cleanup := func() error {
		var err error
		once.Do(func() {
			if rotator != nil {
				err = rotator.Close()
			}
		})
		return err
	}
	return slog.New(handler), b.levelVar, cleanup, nil
}
