//go:build !debugCmdpro
// +build !debugCmdpro

package cmdpro

func debugf(string, ...interface{}) {}
