//go:build js
// +build js

package common

import "github.com/gopherjs/gopherjs/js"

// output writes to the browser console using the console method named by level.
func output(level string, args ...interface{}) {
	js.Global.Get("console").Call(level, args...)
}
