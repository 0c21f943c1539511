// Package xlog 基于 log/slog 的结构化日志库。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，Build 返回该错误）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xpathconf.log", 100, 3).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// Builder 为一次性使用，调用 [Builder.Build] 后需通过 [New] 创建新实例。
//
// # 全局 Logger
//
// 适用于 CLI 等简单场景，库代码推荐依赖注入（如 xpathconf.WithLogger）。
//
//   - [Default]: 获取全局 Logger（惰性初始化：stderr、Info 级别、text 格式）
//   - [SetDefault]: 替换全局 Logger（nil 会被忽略）
//   - [ResetDefault]: 重置为未初始化状态（仅用于测试）
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)，与 slog 一致。
// [Level] 实现 encoding.TextUnmarshaler，可直接从配置文件反序列化。
//
// # 日志轮转
//
// [Builder.SetRotation] 基于 lumberjack 按文件大小轮转，cleanup 函数负责关闭文件。
package xlog
