// Package xhandle 提供稀缺 OS 资源的独占所有权句柄。
//
// # 功能概览
//
//   - [Traits]: 资源族的策略契约，定义"无效值"与释放方式
//   - [Handle]: 由 Traits 参数化的独占句柄，同一时刻只有一个 Handle 拥有某个有效值
//   - [New] / [Empty]: 构造持有资源或空的句柄
//   - [Handle.Move] / [Handle.Assign]: 所有权转移，源句柄变空，过程中不释放资源
//   - [Handle.Reset] / [Handle.Release] / [Handle.Close]: 替换、交出、释放
//
// # 资源族
//
// 一个资源族只需提供零大小的 Traits 类型：
//
//	type DescriptorTraits struct{}
//
//	func (DescriptorTraits) Invalid() int { return -1 }
//	func (DescriptorTraits) Close(fd int) { _ = unix.Close(fd) }
//
//	type FD = xhandle.Handle[int, DescriptorTraits]
//
// Traits 必须是值类型（通常是 struct{}），Handle 通过其零值调用方法。
// Close 只会收到有效值，结果被丢弃：释放是尽力而为且无条件的。
//
// # 零值
//
// Handle 的零值就是空句柄，Get 返回 Traits.Invalid()，
// 即使 Invalid() 不是 T 的零值（如文件描述符的 -1）。
//
// # 复制
//
// Handle 内嵌 noCopy，按值复制会被 go vet 的 copylocks 检查拒绝。
// 始终通过 *Handle 传递；需要转移所有权时使用 Move、Assign 或 Release。
//
// # 并发
//
// Handle 不是并发安全的，也不需要是：它只有一个所有者。
// 如果原始值通过 Get 逃逸给其他代码，Handle 无法阻止释放后使用。
package xhandle
