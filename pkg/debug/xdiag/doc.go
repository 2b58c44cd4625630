// Package xdiag 提供诊断用的统一值格式化。
//
// # 功能概览
//
//   - [Describe]: 把任意值转换为人类可读的短文本
//   - [Join]: 依次拼接多个值的 Describe 结果，不插入分隔符
//   - [Describer]: 自定义类型实现该接口即可控制自己的诊断文本
//   - [Octal] / [Hex]: 权限位与标志位的常用展示形式
//
// # 使用方式
//
// 调用方在参数之间穿插字面标签来构造消息：
//
//	msg := xdiag.Join("open failed, path: [", path, "], flags: [", xdiag.Hex(flags), "]")
//
// # 不 panic 保证
//
// Describe 对任何输入都不会 panic：nil 接口、typed nil 指针返回 "nil"；
// 自定义 Describe/String/Error 方法内部 panic 时返回 "<panic: ...>" 哨兵文本。
// 这保证了在错误路径上构造诊断消息不会引入新的故障。
package xdiag
