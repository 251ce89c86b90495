//go:build windows
// +build windows

package sysutil

import "math"

// RlimitFiles is a no-op on Windows, there is no file descriptor limit to check.
func RlimitFiles() (cur uint64, err error) {
	return math.MaxUint64, nil
}
