package xpathconf

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform 表示当前平台没有可用的 pathconf 原语。
	ErrUnsupportedPlatform = errors.New("xpathconf: unsupported platform")

	// ErrNotInitialized 表示在 Init 之前调用了包级入口，或在未绑定时调用 Shutdown。
	ErrNotInitialized = errors.New("xpathconf: not initialized")

	// ErrAlreadyInitialized 表示重复调用 Init。
	ErrAlreadyInitialized = errors.New("xpathconf: already initialized")

	// ErrUnknownName 表示无法识别的配置名。
	ErrUnknownName = errors.New("xpathconf: unknown configuration name")

	// ErrNilOption 表示传入了 nil 的 Option 函数。
	ErrNilOption = errors.New("xpathconf: nil option")
)

// QueryError 表示宿主 pathconf 查询失败（路径不存在、无权限、配置名不被识别等）。
//
// Err 为宿主报告的 errno（syscall.Errno），因此
// errors.Is(err, fs.ErrNotExist) 等判断可直接使用。
type QueryError struct {
	Path string
	Name Name
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("xpathconf: pathconf %q %s: %v", e.Path, e.Name, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ConstructionError 表示标准配置名记录无法构建。
// Field 为出错字段名，平台不支持时为空。
type ConstructionError struct {
	Field string
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("xpathconf: build standard names: %v", e.Err)
	}
	return fmt.Sprintf("xpathconf: build standard names: field %s: %v", e.Field, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// RegistrationError 表示 Init 失败，进程级入口未绑定。
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("xpathconf: register entry points: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }
