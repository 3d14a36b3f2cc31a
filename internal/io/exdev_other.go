//go:build !unix && !windows

package ioutils

func isEXDEV(err error) bool {
	return false
}
