package xpathconf

import (
	"math"
	"strings"
	"syscall"
)

// 系统调用函数变量，支持测试中 mock 替换以覆盖错误路径。
// 注意：mock 测试不可使用 t.Parallel()，因为替换包级变量会引发竞态。
var (
	statPath = hostStat
	pathconf = hostPathconf
)

// Query 查询 path 上配置名 name 的宿主取值。
//
// 宿主报告“无确定上限”时返回 [NoLimit]（-1）且 err 为 nil，这不是失败；
// 调用方必须通过 err 而非返回值区分两者。
// 路径不存在、不可访问或配置名不被宿主识别时返回 [*QueryError]，
// 其 Err 为宿主 errno。超出 C int 范围的编码直接返回 EINVAL。
// 对不存在的路径，所有配置名都会失败：查询前先 stat 路径，
// 避免宿主直接返回编译期常量而掩盖路径错误。
//
// 并发安全：无共享可变状态。调用可能阻塞在文件系统 I/O 上。
func Query(path string, name Name) (int64, error) {
	if !hostSupported {
		return 0, ErrUnsupportedPlatform
	}
	if strings.IndexByte(path, 0) >= 0 || !validCode(name) {
		return 0, &QueryError{Path: path, Name: name, Err: syscall.EINVAL}
	}
	if err := statPath(path); err != nil {
		return 0, &QueryError{Path: path, Name: name, Err: err}
	}

	v, err := pathconf(path, int(name))
	if err != nil {
		return 0, &QueryError{Path: path, Name: name, Err: err}
	}
	return v, nil
}

// validCode 报告 name 是否落在 C int 范围内。宿主 pathconf 的 name 参数为
// int，超出范围的编码在转换时会被截断成另一个配置名。
func validCode(name Name) bool {
	return int64(name) >= math.MinInt32 && int64(name) <= math.MaxInt32
}
