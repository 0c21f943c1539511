//go:build !unix

package xpathconf

import "os"

func hostStat(path string) error {
	_, err := os.Stat(path)
	return err
}
