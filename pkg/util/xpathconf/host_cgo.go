//go:build unix && cgo

package xpathconf

/*
#include <stdlib.h>
#include <unistd.h>
*/
import "C"

import "unsafe"

const hostSupported = true

var hostCodes = hostCodeSet{
	linkMax: int(C._PC_LINK_MAX),
	pathMax: int(C._PC_PATH_MAX),
	nameMax: int(C._PC_NAME_MAX),
	pipeBuf: int(C._PC_PIPE_BUF),
}

// hostPathconf 直接调用 libc pathconf(3)。
//
// cgo 在调用前清零 errno，但成功调用也可能留下非零 errno，
// 因此仅在返回 -1 时检查 errno：-1 且 errno 为 0 即“无确定上限”。
func hostPathconf(path string, name int) (int64, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	v, errno := C.pathconf(cpath, C.int(name))
	if v == -1 && errno != nil {
		return 0, errno
	}
	return int64(v), nil
}
