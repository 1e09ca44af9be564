//go:build debugCmdpro
// +build debugCmdpro

package cmdpro

import (
	"log"
)

func debugf(format string, args ...interface{}) {
	log.Printf(format, args...)
}
