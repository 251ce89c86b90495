//go:build !windows
// +build !windows

package sysutil

import "golang.org/x/sys/unix"

// RlimitFiles reports the current limit of open file descriptors.
func RlimitFiles() (cur uint64, err error) {
	var r unix.Rlimit
	err = unix.Getrlimit(unix.RLIMIT_NOFILE, &r)
	return r.Cur, err
}
