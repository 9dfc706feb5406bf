//go:build js
// +build js

package api

import (
	"errors"
	"fmt"

	"github.com/gopherjs/gopherjs/js"
)

// DialWebSocket opens a browser WebSocket. It satisfies Dialer.
func DialWebSocket(url string, l Listener) (conn Conn, err error) {
	ctor := js.Global.Get("WebSocket")
	if ctor == nil || ctor == js.Undefined {
		return nil, errors.New("WebSocket not supported")
	}

	defer func() {
		if r := recover(); r != nil {
			jsErr, ok := r.(*js.Error)
			if !ok {
				panic(r)
			}
			conn, err = nil, jsErr
		}
	}()

	ws := ctor.New(url)
	ws.Set("onopen", func(*js.Object) {
		l.Opened()
	})
	ws.Set("onmessage", func(event *js.Object) {
		l.Received([]byte(event.Get("data").String()))
	})
	ws.Set("onerror", func(*js.Object) {
		netDebug("WebSocket error on", url)
	})
	ws.Set("onclose", func(event *js.Object) {
		l.Closed(fmt.Errorf("closed with code %d", event.Get("code").Int()))
	})
	return &wsConn{ws: ws}, nil
}

// PageStreamURL returns the stream URL for the current page's origin.
func PageStreamURL() string {
	loc := js.Global.Get("location")
	return StreamURL(loc.Get("protocol").String(), loc.Get("host").String())
}

type wsConn struct {
	ws *js.Object
}

func (c *wsConn) Send(data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(*js.Error); ok {
				err = jsErr
				return
			}
			panic(r)
		}
	}()
	c.ws.Call("send", string(data))
	return nil
}

func (c *wsConn) Close() error {
	c.ws.Set("onclose", nil)
	c.ws.Call("close")
	return nil
}
