// Package xpathconf 提供 POSIX pathconf 查询及四个标准配置名的编码。
//
// # 功能概览
//
//   - [Query]: 查询指定路径上某个配置名的宿主取值
//   - [StandardNames]: 返回 LINK_MAX、PATH_MAX、NAME_MAX、PIPE_BUF 的宿主编码
//   - [ParseName]: 将 "NAME_MAX"、"_PC_NAME_MAX" 或十进制编码解析为 [Name]
//   - [Facade]: 带日志与观测的入口对象（Pathconf / PathconfArgs）
//   - [Init] / [Shutdown]: 进程级入口绑定，绑定后可使用包级 [Pathconf] / [PathconfArgs]
//
// # 返回值语义
//
// 宿主返回 -1 且未报告错误表示“无确定上限”（[NoLimit]），不是失败。
// 失败一律通过 error 返回：宿主错误为 [*QueryError]，其 Err 为 errno，
// 因此可以使用 errors.Is(err, fs.ErrNotExist) 判断路径不存在。
// 查询前会先 stat 路径，所以不存在的路径对任何配置名都会失败。
//
// # 平台支持
//
//   - Unix + cgo：直接调用 libc pathconf(3)，编码取自 <unistd.h>
//   - Linux 无 cgo：按 glibc 的方式用 statfs(2) 模拟四个标准配置名，其余编码返回 EINVAL
//   - darwin/BSD 无 cgo：通过 golang.org/x/sys/unix.Pathconf 调用
//   - 其他平台：返回 [ErrUnsupportedPlatform]
//
// # 并发
//
// Query、StandardNames 与 Facade 方法均无共享可变状态，可并发调用。
// 调用可能阻塞在文件系统 I/O 上，不支持取消和超时，也不做重试。
package xpathconf
