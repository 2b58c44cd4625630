// Package xconf 加载 xoskit 工具的配置文件，基于 koanf 实现。
//
// 文件经 xposix 的描述符句柄读取（open → fstat → read），读取失败时
// 错误链中同时包含 [ErrLoadFailed] 与 *xerrno.SystemError，
// 调用方可以用 errors.Is(err, unix.ENOENT) 区分"文件不存在"。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 热加载
//
// [Watch] 基于 fsnotify 监视配置文件所在目录，防抖后调用 Reload 并通知回调。
//
// # 并发安全
//
// Reload 解析成功后在写锁下替换 koanf 实例；Client、Unmarshal 在读锁下访问。
// Client() 返回的指针在 Reload() 后仍然有效，但指向旧配置。
package xconf
