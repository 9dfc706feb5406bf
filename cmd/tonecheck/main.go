//go:build !js
// +build !js

// Command tonecheck plays a kiosk tone through the local sound card with
// the same engine the browser uses and reports what the analyser saw. It is
// used to calibrate speaker volume next to the plate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/simukka/cymatics-kiosk/audio"
	"github.com/simukka/cymatics-kiosk/audio/device"
	"github.com/simukka/cymatics-kiosk/common"
	"github.com/simukka/cymatics-kiosk/render"
)

func main() {
	freq := flag.Float64("freq", audio.DefaultConfig.DefaultFrequency, "Tone frequency in Hz")
	wave := flag.String("wave", "sine", "Waveform: sine, square, triangle or sawtooth")
	amp := flag.Float64("amp", audio.DefaultConfig.TargetGain, "Amplitude between 0 and 1")
	duration := flag.Duration("duration", 3*time.Second, "How long to play")
	offline := flag.Bool("offline", false, "Render without opening the sound card")
	pngPath := flag.String("png", "", "Write the dial for the frequency to this PNG file")
	size := flag.Int("size", 512, "Dial image size in pixels")
	flag.Parse()

	w, err := audio.ParseWaveform(*wave)
	if err != nil {
		log.Fatal(err)
	}
	cfg := audio.DefaultConfig

	if *pngPath != "" {
		if err := writeDial(*pngPath, *size, cfg, *freq); err != nil {
			log.Fatalf("writing dial: %v", err)
		}
		log.Printf("Dial written to %s", *pngPath)
	}

	tone := audio.ToneState{Frequency: *freq, Waveform: w, Amplitude: *amp}
	var level audio.Level
	if *offline {
		level, err = renderOffline(cfg, tone, *duration)
	} else {
		level, err = play(cfg, tone, *duration)
	}
	if err != nil {
		log.Fatal(err)
	}
	report(os.Stdout, cfg, tone, level)
}

func configure(e *audio.Engine, tone audio.ToneState) float64 {
	f := e.SetFrequency(tone.Frequency)
	if err := e.SetWaveform(tone.Waveform); err != nil {
		common.DebugWarn(err.Error())
	}
	e.SetAmplitude(tone.Amplitude)
	return f
}

// play runs the engine on a loop scheduler and streams it to the sound card.
func play(cfg audio.Config, tone audio.ToneState, d time.Duration) (audio.Level, error) {
	graph := audio.NewSoftContext(cfg.SampleRate)
	out, err := device.NewOutput(graph, 50*time.Millisecond)
	if err != nil {
		return audio.Level{}, err
	}
	defer out.Close()

	loop := common.NewLoop()
	engine := audio.NewEngine(graph.Opener(), loop, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		level    audio.Level
		startErr error
	)
	loop.Post(func() {
		tone.Frequency = configure(engine, tone)
		if startErr = engine.Start(); startErr != nil {
			cancel()
			return
		}
		out.Play()
		log.Printf("Playing %.1f Hz %s for %s", tone.Frequency, tone.Waveform, d)
		loop.After(d, func() {
			level = engine.Level()
			engine.Stop()
			loop.After(cfg.Ramp()+cfg.RestartDelay, cancel)
		})
	})
	loop.Run(ctx)
	engine.Close()
	return level, startErr
}

// renderOffline drives the engine with a manual clock and no device.
func renderOffline(cfg audio.Config, tone audio.ToneState, d time.Duration) (audio.Level, error) {
	graph := audio.NewSoftContext(cfg.SampleRate)
	sched := common.NewManual()
	engine := audio.NewEngine(graph.Opener(), sched, cfg)
	defer engine.Close()

	configure(engine, tone)
	if err := engine.Start(); err != nil {
		return audio.Level{}, err
	}
	graph.RenderSeconds(d.Seconds())
	sched.Advance(d)
	return engine.Level(), nil
}

func writeDial(path string, size int, cfg audio.Config, freq float64) error {
	raster := render.NewRaster(size, size)
	raster.Fill(render.Theme.DialBackground)
	dial := render.NewDial(raster, render.NewDialMapping(cfg.MinFrequency, cfg.MaxFrequency), render.DefaultDialConfig)
	dial.Draw(cfg.ClampFrequency(freq))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func report(w *os.File, cfg audio.Config, tone audio.ToneState, l audio.Level) {
	fmt.Fprintf(w, "tone:        %.1f Hz %s amplitude %.2f\n", cfg.ClampFrequency(tone.Frequency), tone.Waveform, tone.Amplitude)
	fmt.Fprintf(w, "window:      %d samples\n", l.Length)
	fmt.Fprintf(w, "rms:         %.4f (%.1f dBFS)\n", l.RMS, l.RMSdB)
	fmt.Fprintf(w, "peak:        %.4f (%.1f dBFS)\n", l.Peak, l.PeakdB)
	fmt.Fprintf(w, "crossings:   %d (~%.1f Hz)\n", l.ZeroCrossings, l.Frequency(cfg.SampleRate))
}
