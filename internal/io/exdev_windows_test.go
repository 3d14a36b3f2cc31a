//go:build windows

package ioutils

func crossDeviceErr() error { return errorNotSameDevice }
