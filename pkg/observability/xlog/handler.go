package xlog

import (
	"context"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
)

// EnrichHandler 从 context 中的 span 注入 trace_id 和 span_id。
//
// context 不含有效 span 时原样转发。调用 WithGroup 后注入字段归入该 group。
type EnrichHandler struct {
	base slog.Handler
}

// NewEnrichHandler 包装 base。
func NewEnrichHandler(base slog.Handler) (*EnrichHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	return &EnrichHandler{base: base}, nil
}

func (h *EnrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle 按 slog 约定先 Clone 再追加属性。
func (h *EnrichHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			r = r.Clone()
			r.AddAttrs(
				slog.String("trace_id", sc.TraceID().String()),
				slog.String("span_id", sc.SpanID().String()),
			)
		}
	}
	return h.base.Handle(ctx, r)
}

func (h *EnrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EnrichHandler{base: h.base.WithAttrs(attrs)}
}

func (h *EnrichHandler) WithGroup(name string) slog.Handler {
	return &EnrichHandler{base: h.base.WithGroup(name)}
}

// errorHandler 把 Handle 的错误交给回调。派生 handler 共享递归保护。
type errorHandler struct {
	base    slog.Handler
	onError func(error)
	active  *atomic.Bool
}

func newErrorHandler(base slog.Handler, fn func(error)) *errorHandler {
	return &errorHandler{base: base, onError: fn, active: new(atomic.Bool)}
}

func (h *errorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *errorHandler) Handle(ctx context.Context, r slog.Record) error {
	err := h.base.Handle(ctx, r)
	if err != nil && h.active.CompareAndSwap(false, true) {
		defer h.active.Store(false)
		func() {
			defer func() { _ = recover() }()
			h.onError(err)
		}()
	}
	return err
}

func (h *errorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &errorHandler{base: h.base.WithAttrs(attrs), onError: h.onError, active: h.active}
}

func (h *errorHandler) WithGroup(name string) slog.Handler {
	return &errorHandler{base: h.base.WithGroup(name), onError: h.onError, active: h.active}
}
