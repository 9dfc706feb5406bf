//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/cymatics-kiosk/api"
	"github.com/simukka/cymatics-kiosk/audio"
	"github.com/simukka/cymatics-kiosk/common"
	"github.com/simukka/cymatics-kiosk/page"
	"github.com/simukka/cymatics-kiosk/render"
)

// closer is what every page controller hands back for unload.
type closer interface {
	Close()
}

func main() {
	doc := js.Global.Get("document")
	if doc.Get("readyState").String() == "loading" {
		doc.Call("addEventListener", "DOMContentLoaded", func() { start() })
	} else {
		start()
	}
}

func start() {
	sched := common.Browser{}
	client := api.NewClient("")

	var c closer
	switch path := js.Global.Get("location").Get("pathname").String(); path {
	case page.ExperimentPath:
		c = startRunner(sched, client)
	case page.CollectionPath:
		c = startCollection(client)
	case page.HomePath, "/index.html":
		c = startSelector(sched, client)
	default:
		common.DebugWarn("no page controller for", path)
		return
	}

	js.Global.Call("addEventListener", "beforeunload", func() {
		c.Close()
	})
}

func canvasByID(id string) *render.Canvas {
	el := js.Global.Get("document").Call("getElementById", id)
	if el == nil || el == js.Undefined {
		panic(id + " canvas element not found")
	}
	c := render.NewCanvas(el)
	c.FitToElement()
	return c
}

func startSelector(sched common.Scheduler, client *api.Client) *page.Selector {
	cfg := audio.DefaultConfig
	engine := audio.NewEngine(audio.OpenWebAudio, sched, cfg)

	dialCanvas := canvasByID("dialCanvas")
	dial := render.NewDial(dialCanvas, render.NewDialMapping(cfg.MinFrequency, cfg.MaxFrequency), render.DefaultDialConfig)

	overlay := render.NewStatsOverlay(engine.Level)
	wave := render.NewWaveformRenderer(canvasByID("waveformCanvas"), sched, render.AnalyticSource{Tone: engine.State})
	wave.Playing = func() bool { return engine.State().Playing }
	wave.Overlay = overlay

	s := page.NewSelector(page.SelectorOptions{
		Engine:    engine,
		Backend:   client,
		Scheduler: sched,
		View:      page.NewSelectorView(),
		Dial:      dial,
		Waveform:  wave,
		Overlay:   overlay,
		Async:     page.Goroutine,
	})
	page.BindSelector(s, dialCanvas.Element())
	s.Init()
	return s
}

func startRunner(sched common.Scheduler, client *api.Client) *page.Runner {
	engine := audio.NewEngine(audio.OpenWebAudio, sched, audio.DefaultConfig)
	stream := api.NewStream(api.PageStreamURL(), api.DialWebSocket)

	r := page.NewRunner(page.RunnerOptions{
		Engine:    engine,
		Backend:   client,
		Stream:    stream,
		Scheduler: sched,
		View:      page.NewRunnerView(),
		Session:   page.DefaultSessionConfig,
		Async:     page.Goroutine,
	})
	page.BindRunner(r)
	r.Init()
	return r
}

func startCollection(client *api.Client) *page.Collection {
	c := page.NewCollection(client, page.NewCollectionView(), page.Goroutine)
	page.BindCollection(c)
	c.Init()
	return c
}
