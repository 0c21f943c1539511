package xlog

import "log/slog"

// 常用属性 key。
const (
	KeyError     = "error"
	KeyPath      = "path"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyCount     = "count"
)

// Err 创建错误属性，err 为 nil 时返回空属性（slog 会忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Path 创建文件路径属性。
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Component 创建组件名称属性。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名称属性。
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Count 创建计数属性。
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}
