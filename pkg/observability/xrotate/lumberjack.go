package xrotate

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 默认配置值。
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
	DefaultCompress   = true

	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

type config struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
	// fileMode 为 0 时保持 lumberjack 的 0600。
	fileMode uint32
	onError  func(error)
}

// Option 配置选项函数。
type Option func(*config)

// WithMaxSize 设置单个日志文件的最大大小（MB）。
func WithMaxSize(mb int) Option {
	return func(c *config) { c.maxSizeMB = mb }
}

// WithMaxBackups 设置保留的备份数量，0 表示只按天数清理。
func WithMaxBackups(n int) Option {
	return func(c *config) { c.maxBackups = n }
}

// WithMaxAge 设置备份保留天数，0 表示只按数量清理。
func WithMaxAge(days int) Option {
	return func(c *config) { c.maxAgeDays = days }
}

// WithCompress 设置是否 gzip 压缩备份。
func WithCompress(compress bool) Option {
	return func(c *config) { c.compress = compress }
}

// WithLocalTime 设置备份文件名是否使用本地时间。
func WithLocalTime(local bool) Option {
	return func(c *config) { c.localTime = local }
}

// WithFileMode 设置日志文件权限位（0000~0777）。
func WithFileMode(mode uint32) Option {
	return func(c *config) { c.fileMode = mode }
}

// WithOnError 设置内部错误（如权限调整失败）的回调。
//
// 回调不得向同一 Rotator 写入，否则会递归。
func WithOnError(fn func(error)) Option {
	return func(c *config) { c.onError = fn }
}

type lumberjackRotator struct {
	logger   *lumberjack.Logger
	path     string
	fileMode uint32
	onError  func(error)
	mu       sync.Mutex // 保护 ensureFileMode 的 stat+chmod

	closed atomic.Bool

	// 累计写入超过 maxSizeBytes 时 lumberjack 可能已自动轮转，需要重新检查权限。
	modeApplied  atomic.Bool
	maxSizeBytes int64
	bytesWritten atomic.Int64
}

// NewLumberjack 创建写入 filename 的轮转器，不存在的父目录以 0750 创建。
func NewLumberjack(filename string, opts ...Option) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := config{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		compress:   DefaultCompress,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	path, err := filepath.Abs(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("xrotate: resolve %s: %w", filename, err)
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	return &lumberjackRotator{
		logger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: cfg.maxBackups,
			MaxAge:     cfg.maxAgeDays,
			Compress:   cfg.compress,
			LocalTime:  cfg.localTime,
		},
		path:         path,
		fileMode:     cfg.fileMode,
		onError:      cfg.onError,
		maxSizeBytes: int64(cfg.maxSizeMB) << 20,
	}, nil
}

func validate(cfg *config) error {
	if cfg.maxSizeMB <= 0 || cfg.maxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, cfg.maxSizeMB, maxSizeMB)
	}
	if cfg.maxBackups < 0 || cfg.maxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, cfg.maxBackups, maxBackups)
	}
	if cfg.maxAgeDays < 0 || cfg.maxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, cfg.maxAgeDays, maxAgeDays)
	}
	if cfg.maxBackups == 0 && cfg.maxAgeDays == 0 {
		return ErrNoCleanupPolicy
	}
	if cfg.fileMode&^0o777 != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits allowed", ErrInvalidFileMode, cfg.fileMode)
	}
	return nil
}

func (r *lumberjackRotator) Write(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}

	n, err := r.logger.Write(p)
	if err != nil {
		// Close 可能在 logger.Write 期间完成，此时统一报告 ErrClosed。
		if r.closed.Load() {
			return n, ErrClosed
		}
		return n, err
	}

	if r.fileMode != 0 {
		needCheck := !r.modeApplied.Load()
		if !needCheck && r.bytesWritten.Add(int64(n)) >= r.maxSizeBytes {
			needCheck = true
		}
		if needCheck {
			r.reportError(r.ensureFileMode())
		}
	}
	return n, nil
}

func (r *lumberjackRotator) ensureFileMode() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	perm, exists, err := filePerm(r.path)
	if err != nil {
		return err
	}
	if !exists {
		// lumberjack 延迟创建文件
		return nil
	}
	if perm != r.fileMode {
		if err := chmodFile(r.path, r.fileMode); err != nil {
			return err
		}
	}
	r.modeApplied.Store(true)
	r.bytesWritten.Store(0)
	return nil
}

// reportError 回调 panic 被隔离，日志错误通知不得中断写入方。
func (r *lumberjackRotator) reportError(err error) {
	if err != nil && r.onError != nil {
		defer func() { _ = recover() }()
		r.onError(err)
	}
}

// Close 只执行一次，重复调用返回 [ErrClosed]。
func (r *lumberjackRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.logger.Close()
}

func (r *lumberjackRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	if err := r.logger.Rotate(); err != nil {
		if r.closed.Load() {
			return ErrClosed
		}
		return err
	}
	if r.fileMode != 0 {
		r.modeApplied.Store(false)
		r.bytesWritten.Store(0)
		r.reportError(r.ensureFileMode())
	}
	return nil
}
