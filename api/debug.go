package api

import "github.com/simukka/cymatics-kiosk/common"

func netDebug(args ...interface{}) {
	common.Debug(append([]interface{}{"[Network]"}, args...)...)
}
