package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 是默认防抖时间。
const DefaultDebounce = 100 * time.Millisecond

var (
	// ErrNilCallback 表示 Watch 的回调为 nil。
	ErrNilCallback = errors.New("xconf: watch callback is nil")

	// ErrUnsupportedConfig 表示 Config 不是由本包创建的。
	ErrUnsupportedConfig = errors.New("xconf: unsupported config type")

	// ErrWatcherRunning 表示 Run 已在执行。
	ErrWatcherRunning = errors.New("xconf: watcher already running")

	// ErrWatch 包装 fsnotify 报告的错误。
	ErrWatch = errors.New("xconf: watch error")
)

// WatchCallback 在每次重载后调用，err 非 nil 时配置保持旧值。
type WatchCallback func(cfg Config, err error)

// WatchOption 监视器配置选项。
type WatchOption func(*Watcher)

// WithDebounce 设置防抖时间，窗口内的多次变更只触发一次重载。
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher 监视配置文件并自动 Reload。
//
// 监视的是文件所在目录：编辑器常以写临时文件再 rename 的方式保存。
// 回调在 Run 所在的 goroutine 中执行。
type Watcher struct {
	cfg      *koanfConfig
	fs       *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// Watch 创建 cfg 的监视器，调用 Run 开始监视。
func Watch(cfg Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if callback == nil {
		return nil, ErrNilCallback
	}
	kc, ok := cfg.(*koanfConfig)
	if !ok {
		return nil, ErrUnsupportedConfig
	}
	if kc.isBytes {
		return nil, ErrReloadBytes
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}
	dir := filepath.Dir(kc.path)
	if err := fsw.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("%w: add %s: %w", ErrWatch, dir, err), fsw.Close())
	}

	w := &Watcher{
		cfg:      kc,
		fs:       fsw,
		callback: callback,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run 阻塞直到 ctx 取消或 Stop 被调用，返回时释放监视资源。
//
// ctx 取消时返回 ctx.Err()，Stop 时返回 nil。
func (w *Watcher) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrWatcherRunning
	}
	defer func() { _ = w.Stop() }()

	name := filepath.Base(w.cfg.path)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name ||
				!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.callback(w.cfg, fmt.Errorf("%w: %w", ErrWatch, err))
		case <-fire:
			fire = nil
			w.callback(w.cfg, w.cfg.Reload())
		}
	}
}

// Stop 停止监视，可重复调用。
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fs.Close()
	})
	return w.stopErr
}
