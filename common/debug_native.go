//go:build !js
// +build !js

package common

import (
	"log"
	"strings"
)

func output(level string, args ...interface{}) {
	if level != "log" {
		args = append([]interface{}{strings.ToUpper(level) + ":"}, args...)
	}
	log.Println(args...)
}
