//go:build unix

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xoskit/pkg/config/xconf"
	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/observability/xlog"
	"github.com/omeyang/xoskit/pkg/observability/xmetrics"
	"github.com/omeyang/xoskit/pkg/observability/xrotate"
	"github.com/omeyang/xoskit/pkg/util/xsys"
)

const defaultLogLevel = "warn"

// fileConfig 是配置文件结构。命令行选项优先于配置文件。
type fileConfig struct {
	Log struct {
		Level      string `koanf:"level"`
		File       string `koanf:"file"`
		MaxSizeMB  int    `koanf:"max_size_mb"`
		MaxBackups int    `koanf:"max_backups"`
		MaxAgeDays int    `koanf:"max_age_days"`
		Compress   *bool  `koanf:"compress"`
		FileMode   uint32 `koanf:"file_mode"`
	} `koanf:"log"`
	// FileLimit 非零时在启动时设置 RLIMIT_NOFILE。
	FileLimit uint64 `koanf:"file_limit"`
}

// session 持有一次运行期间安装的全局状态，teardown 负责恢复。
type session struct {
	logger  *slog.Logger
	level   *slog.LevelVar
	cleanup func() error
	cfg     xconf.Config
	// levelPinned 表示 --log-level 显式指定，热加载不覆盖。
	levelPinned bool
	provider    *sdkmetric.MeterProvider
	reader      *sdkmetric.ManualReader
	prev        xdual.Observer
	installed   bool
}

func (s *session) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var fc fileConfig
	if path := cmd.String("config"); path != "" {
		cfg, err := xconf.New(path)
		if err != nil {
			return ctx, err
		}
		if err := cfg.Unmarshal("", &fc); err != nil {
			return ctx, err
		}
		s.cfg = cfg
	}
	s.levelPinned = cmd.IsSet("log-level")
	if s.levelPinned || fc.Log.Level == "" {
		fc.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		fc.Log.File = cmd.String("log-file")
	}

	level, err := parseLevel(fc.Log.Level)
	if err != nil {
		return ctx, err
	}

	b := xlog.New().
		SetOutput(cmd.Root().ErrWriter).
		SetLevel(level).
		SetProcessAttrs()
	if fc.Log.File != "" {
		b.SetRotation(fc.Log.File, rotateOptions(&fc)...)
	}
	logger, levelVar, cleanup, err := b.Build()
	if err != nil {
		return ctx, err
	}
	s.logger, s.level, s.cleanup = logger, levelVar, cleanup

	s.reader = sdkmetric.NewManualReader()
	s.provider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))
	failures, err := xmetrics.NewFailureObserver(xmetrics.WithMeterProvider(s.provider))
	if err != nil {
		return ctx, err
	}
	s.prev = xdual.SetObserver(xdual.Observers(xdual.LogObserver(s.logger), failures))
	s.installed = true

	s.applyFileLimit(fc.FileLimit)
	return ctx, nil
}

func (s *session) applyFileLimit(limit uint64) {
	if limit == 0 {
		return
	}
	if err := xsys.SetFileLimit(limit); err != nil {
		s.logger.Warn("set file limit from config failed", slog.Any("error", err))
		return
	}
	s.logger.Debug("file limit applied", slog.Uint64("limit", limit))
}

// reload 重新应用配置中可热更新的部分：日志级别（未被 --log-level 固定时）和文件描述符上限。
// 日志输出目标不随配置变化。
func (s *session) reload(cfg xconf.Config) error {
	var fc fileConfig
	if err := cfg.Unmarshal("", &fc); err != nil {
		return err
	}
	if !s.levelPinned && fc.Log.Level != "" {
		level, err := xlog.ParseLevel(fc.Log.Level)
		if err != nil {
			return err
		}
		s.level.Set(level)
	}
	s.applyFileLimit(fc.FileLimit)
	return nil
}

// watch 监视配置文件直到 ctx 取消；count 大于 0 时成功重载 count 次后返回。
func (s *session) watch(ctx context.Context, w io.Writer, count int) error {
	if s.cfg == nil {
		return usagef("watch 需要 --config")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloads := 0
	watcher, err := xconf.Watch(s.cfg, func(cfg xconf.Config, err error) {
		if err == nil {
			err = s.reload(cfg)
		}
		if err != nil {
			s.logger.Warn("config reload failed", slog.String("path", cfg.Path()), slog.Any("error", err))
			return
		}
		reloads++
		s.logger.Info("config reloaded", slog.String("path", cfg.Path()))
		fmt.Fprintf(w, "reloaded %s level=%s\n", cfg.Path(), s.level.Level())
		if count > 0 && reloads >= count {
			cancel()
		}
	})
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *session) teardown(ctx context.Context, cmd *cli.Command) error {
	if s.installed {
		xdual.SetObserver(s.prev)
		s.installed = false
	}
	if s.reader != nil && cmd.Bool("stats") {
		if err := writeStats(ctx, cmd.Root().ErrWriter, s.reader); err != nil {
			s.logger.Debug("collect stats failed", slog.Any("error", err))
		}
	}
	if s.provider != nil {
		_ = s.provider.Shutdown(ctx)
	}
	if s.cleanup != nil {
		_ = s.cleanup()
	}
	return nil
}

// rotateOptions 只传递配置文件中出现的字段，其余使用 xrotate 默认值。
func rotateOptions(fc *fileConfig) []xrotate.Option {
	var opts []xrotate.Option
	if fc.Log.MaxSizeMB > 0 {
		opts = append(opts, xrotate.WithMaxSize(fc.Log.MaxSizeMB))
	}
	if fc.Log.MaxBackups > 0 {
		opts = append(opts, xrotate.WithMaxBackups(fc.Log.MaxBackups))
	}
	if fc.Log.MaxAgeDays > 0 {
		opts = append(opts, xrotate.WithMaxAge(fc.Log.MaxAgeDays))
	}
	if fc.Log.Compress != nil {
		opts = append(opts, xrotate.WithCompress(*fc.Log.Compress))
	}
	if fc.Log.FileMode != 0 {
		opts = append(opts, xrotate.WithFileMode(fc.Log.FileMode))
	}
	return opts
}

func parseLevel(s string) (slog.Level, error) {
	level, err := xlog.ParseLevel(s)
	if err != nil {
		return level, usagef("无效的日志级别 %q", s)
	}
	return level, nil
}

// writeStats 按 operation/errno 输出失败计数，行序稳定。
func writeStats(ctx context.Context, w io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return err
	}
	var lines []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || m.Name != xmetrics.MetricFailures {
				continue
			}
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value(xmetrics.AttrOperation)
				errno, _ := dp.Attributes.Value(xmetrics.AttrErrno)
				lines = append(lines, fmt.Sprintf("failures %s %s %d", op.AsString(), errno.AsString(), dp.Value))
			}
		}
	}
	sort.Strings(lines)
	if len(lines) == 0 {
		lines = []string{"failures none"}
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// setupSignalHandler 第一次信号优雅取消，第二次信号强制退出（130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
