//go:build unix

package ioutils

import "syscall"

func crossDeviceErr() error { return syscall.EXDEV }
