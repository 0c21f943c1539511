//go:build unix

package xpathconf

import "golang.org/x/sys/unix"

func hostStat(path string) error {
	var st unix.Stat_t
	return unix.Stat(path, &st)
}
