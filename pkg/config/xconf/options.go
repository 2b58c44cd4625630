package xconf

// Options 定义配置加载选项。
type Options struct {
	// Delim 配置键的分隔符，默认为 "."。
	Delim string

	// Tag 结构体标签名，用于 Unmarshal，默认为 "koanf"。
	Tag string

	// MaxSize 配置文件的字节上限，默认为 [MaxFileSize]。
	// New 与 Reload 读取文件时检查；NewFromBytes 不受限制。
	MaxSize int64
}

// Option 定义配置选项函数类型。
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Delim:   ".",
		Tag:     "koanf",
		MaxSize: MaxFileSize,
	}
}

// WithDelim 设置配置键分隔符，例如 "app.server.port" 中的 "."。
func WithDelim(delim string) Option {
	return func(o *Options) {
		o.Delim = delim
	}
}

// WithTag 设置 Unmarshal 时字段映射使用的结构体标签名。
func WithTag(tag string) Option {
	return func(o *Options) {
		o.Tag = tag
	}
}

// WithMaxSize 设置配置文件的字节上限。非正值忽略，保留 [MaxFileSize]。
func WithMaxSize(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxSize = n
		}
	}
}
