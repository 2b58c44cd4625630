package xerrno

// Option 定义 [New] 的配置选项。
type Option func(*options)

type options struct {
	msg       string
	skip      int
	location  bool
	file      string
	line      int
	function  string
	goroutine uint64
	hasGID    bool
	thread    int
	hasTID    bool
}

// WithMessage 设置附加的描述消息，通常由 xdiag.Join 构造。
func WithMessage(msg string) Option {
	return func(o *options) {
		o.msg = msg
	}
}

// WithCallerSkip 在自动捕获出错位置时额外跳过 n 层调用栈。
// 封装 New 的辅助函数用它把位置归属到自己的调用方。
func WithCallerSkip(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.skip = n
		}
	}
}

// WithLocation 显式指定出错位置，不再自动捕获。
func WithLocation(file string, line int, function string) Option {
	return func(o *options) {
		o.location = true
		o.file, o.line, o.function = file, line, function
	}
}

// WithGoroutine 显式指定出错的 goroutine，默认为当前 goroutine。
func WithGoroutine(id uint64) Option {
	return func(o *options) {
		o.goroutine, o.hasGID = id, true
	}
}

// WithThread 显式指定出错的 OS 线程，默认为当前线程。
func WithThread(tid int) Option {
	return func(o *options) {
		o.thread, o.hasTID = tid, true
	}
}
