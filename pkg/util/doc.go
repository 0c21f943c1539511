// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xpathconf: POSIX pathconf 查询门面，路径级文件系统限制（LINK_MAX、PATH_MAX、NAME_MAX、PIPE_BUF）
//
// 设计原则：
//   - 宿主错误原样保留为 errno，可用 errors.Is 判断
//   - 跨平台兼容，不支持的平台显式报错
package util
