//go:build !unix || (!cgo && !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd)

package xpathconf

const hostSupported = false

var hostCodes = hostCodeSet{}

func hostPathconf(string, int) (int64, error) {
	return 0, ErrUnsupportedPlatform
}
