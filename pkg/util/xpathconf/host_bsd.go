//go:build (darwin || dragonfly || freebsd || netbsd || openbsd) && !cgo

package xpathconf

import "golang.org/x/sys/unix"

const hostSupported = true

// BSD 系 <unistd.h> 中的 _PC_* 编码。
var hostCodes = hostCodeSet{
	linkMax: 1,
	pathMax: 5,
	nameMax: 4,
	pipeBuf: 6,
}

func hostPathconf(path string, name int) (int64, error) {
	v, err := unix.Pathconf(path, name)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}
