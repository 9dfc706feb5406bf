//go:build js
// +build js

package page

import (
	"strconv"
	"time"

	"github.com/gopherjs/gopherjs/js"
	"github.com/simukka/cymatics-kiosk/api"
	"github.com/simukka/cymatics-kiosk/audio"
)

func byID(id string) *js.Object {
	el := js.Global.Get("document").Call("getElementById", id)
	if el == nil || el == js.Undefined {
		return nil
	}
	return el
}

func setText(el *js.Object, s string) {
	if el != nil {
		el.Set("textContent", s)
	}
}

func setDisplay(el *js.Object, visible bool) {
	if el == nil {
		return
	}
	if visible {
		el.Get("style").Set("display", "block")
	} else {
		el.Get("style").Set("display", "none")
	}
}

func setDisabled(el *js.Object, disabled bool) {
	if el != nil {
		el.Set("disabled", disabled)
	}
}

func toggleClass(el *js.Object, class string, on bool) {
	if el != nil {
		el.Get("classList").Call("toggle", class, on)
	}
}

func on(el *js.Object, event string, fn func(ev *js.Object)) {
	if el != nil {
		el.Call("addEventListener", event, fn)
	}
}

func navigate(path string) {
	js.Global.Get("location").Set("href", path)
}

func formatHz(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// selectorDOM implements SelectorView.
type selectorDOM struct {
	value, input, status, preview, errorBox *js.Object
	waveButtons                            *js.Object
}

// NewSelectorView binds the selector page's elements.
func NewSelectorView() SelectorView {
	return &selectorDOM{
		value:       byID("frequencyValue"),
		input:       byID("frequencyInput"),
		status:      byID("frequencyStatus"),
		preview:     byID("previewBtn"),
		errorBox:    byID("errorMessage"),
		waveButtons: js.Global.Get("document").Call("querySelectorAll", ".waveform-btn"),
	}
}

func (v *selectorDOM) ShowFrequency(f float64) {
	setText(v.value, formatHz(f))
	if v.input != nil {
		v.input.Set("value", f)
	}
}

func (v *selectorDOM) ShowFrequencyStatus(text, class string) {
	setText(v.status, text)
	if v.status != nil {
		v.status.Set("className", "status-indicator "+class)
	}
}

func (v *selectorDOM) ShowWaveform(w audio.Waveform) {
	for i := 0; i < v.waveButtons.Length(); i++ {
		btn := v.waveButtons.Index(i)
		toggleClass(btn, "active", btn.Get("dataset").Get("type").String() == w.String())
	}
}

func (v *selectorDOM) SetPreviewActive(active bool) {
	toggleClass(v.preview, "active", active)
}

func (v *selectorDOM) ShowError(msg string) {
	if v.errorBox == nil {
		js.Global.Call("alert", msg)
		return
	}
	setText(v.errorBox, msg)
	setDisplay(v.errorBox, true)
}

func (v *selectorDOM) Navigate(path string) { navigate(path) }

// BindSelector wires the selector page's inputs to s. dial is the dial
// canvas element.
func BindSelector(s *Selector, dial *js.Object) {
	doc := js.Global.Get("document")

	on(byID("frequencyInput"), "input", func(ev *js.Object) {
		s.SetFrequency(ev.Get("target").Get("value").Float())
	})
	on(byID("volumeInput"), "input", func(ev *js.Object) {
		s.SetAmplitude(ev.Get("target").Get("value").Float())
	})
	on(byID("previewBtn"), "click", func(*js.Object) { s.TogglePreview() })
	on(byID("randomBtn"), "click", func(*js.Object) { s.Suggest() })
	on(byID("startBtn"), "click", func(*js.Object) { s.StartExperiment() })

	buttons := doc.Call("querySelectorAll", ".waveform-btn")
	for i := 0; i < buttons.Length(); i++ {
		btn := buttons.Index(i)
		on(btn, "click", func(*js.Object) {
			s.SetWaveform(btn.Get("dataset").Get("type").String())
		})
	}

	// Pointer positions are scaled from CSS pixels to the canvas backing store.
	local := func(ev *js.Object) (x, y float64) {
		rect := dial.Call("getBoundingClientRect")
		x = ev.Get("clientX").Float() - rect.Get("left").Float()
		y = ev.Get("clientY").Float() - rect.Get("top").Float()
		if rw := rect.Get("width").Float(); rw > 0 {
			x *= dial.Get("width").Float() / rw
		}
		if rh := rect.Get("height").Float(); rh > 0 {
			y *= dial.Get("height").Float() / rh
		}
		return x, y
	}
	on(dial, "mousedown", func(ev *js.Object) { s.PointerDown(local(ev)) })
	on(dial, "mousemove", func(ev *js.Object) { s.PointerMove(local(ev)) })
	doc.Call("addEventListener", "mouseup", func(*js.Object) { s.PointerUp() })

	doc.Call("addEventListener", "keydown", func(ev *js.Object) {
		if tag := ev.Get("target").Get("tagName"); tag != js.Undefined && tag.String() == "INPUT" {
			return
		}
		if s.HandleKey(ev.Get("keyCode").Int(), ev.Get("shiftKey").Bool()) {
			ev.Call("preventDefault")
		}
	})
}

// runnerDOM implements RunnerView.
type runnerDOM struct {
	feed, captured, start, stop, next *js.Object
	value, timer, status, timestamp   *js.Object
}

// NewRunnerView binds the experiment page's elements.
func NewRunnerView() RunnerView {
	return &runnerDOM{
		feed:      byID("cameraFeed"),
		captured:  byID("capturedImage"),
		start:     byID("startButton"),
		stop:      byID("stopButton"),
		next:      byID("nextButton"),
		value:     byID("frequencyValue"),
		timer:     byID("timer"),
		status:    byID("statusDisplay"),
		timestamp: byID("timestamp"),
	}
}

func (v *runnerDOM) ShowFrequency(f float64) { setText(v.value, formatHz(f)) }

func (v *runnerDOM) ShowStatus(msg string) { setText(v.status, msg) }

func (v *runnerDOM) ShowTimer(remaining int, pulse bool) {
	setText(v.timer, strconv.Itoa(remaining))
	toggleClass(v.timer, "pulse", pulse)
}

func (v *runnerDOM) SetStartEnabled(enabled bool) { setDisabled(v.start, !enabled) }

func (v *runnerDOM) SetRecording(recording bool) {
	setDisabled(v.stop, !recording)
	toggleClass(v.feed, "recording", recording)
}

func (v *runnerDOM) ShowFrame(dataURL string) {
	if v.feed != nil {
		v.feed.Set("src", dataURL)
	}
}

func (v *runnerDOM) ShowCapture(imagePath string) {
	if v.captured != nil {
		v.captured.Set("src", imagePath)
	}
	setDisplay(v.captured, true)
	setDisplay(v.next, true)
}

func (v *runnerDOM) ShowTimestamp(t time.Time) {
	setText(v.timestamp, t.Format("2006-01-02 15:04:05"))
}

func (v *runnerDOM) Navigate(path string) { navigate(path) }

// BindRunner wires the experiment page's buttons to r.
func BindRunner(r *Runner) {
	on(byID("startButton"), "click", func(*js.Object) { r.Start() })
	on(byID("stopButton"), "click", func(*js.Object) { r.Stop() })
	on(byID("nextButton"), "click", func(*js.Object) { r.Next() })
}

// collectionDOM implements CollectionView.
type collectionDOM struct {
	form, email, phone, image, value, success *js.Object
}

// NewCollectionView binds the collection page's elements.
func NewCollectionView() CollectionView {
	return &collectionDOM{
		form:    byID("collectionForm"),
		email:   byID("email"),
		phone:   byID("phone"),
		image:   byID("resultImage"),
		value:   byID("frequencyValue"),
		success: byID("successMessage"),
	}
}

func (v *collectionDOM) ShowResult(res api.Result) {
	if v.image != nil {
		v.image.Set("src", res.ImagePath)
	}
	setText(v.value, formatHz(res.Frequency))
}

func (v *collectionDOM) SetContactRequired(email, phone bool) {
	if v.email != nil {
		v.email.Set("required", email)
	}
	if v.phone != nil {
		v.phone.Set("required", phone)
	}
}

func (v *collectionDOM) Alert(msg string) { js.Global.Call("alert", msg) }

func (v *collectionDOM) ShowSuccess() {
	setDisplay(v.form, false)
	setDisplay(v.success, true)
}

func (v *collectionDOM) Download(url, filename string) {
	doc := js.Global.Get("document")
	a := doc.Call("createElement", "a")
	a.Set("href", url)
	a.Set("download", filename)
	doc.Get("body").Call("appendChild", a)
	a.Call("click")
	doc.Get("body").Call("removeChild", a)
}

func (v *collectionDOM) Navigate(path string) { navigate(path) }

func fieldValue(id string) string {
	if el := byID(id); el != nil {
		return el.Get("value").String()
	}
	return ""
}

func fieldChecked(id string) bool {
	if el := byID(id); el != nil {
		return el.Get("checked").Bool()
	}
	return false
}

func readContactForm() ContactForm {
	return ContactForm{
		Name:      fieldValue("name"),
		Email:     fieldValue("email"),
		Phone:     fieldValue("phone"),
		OptIn:     fieldChecked("optIn"),
		SendImage: fieldChecked("sendImage"),
		SendVideo: fieldChecked("sendVideo"),
	}
}

// BindCollection wires the collection page's form and buttons to c.
func BindCollection(c *Collection) {
	on(byID("collectionForm"), "submit", func(ev *js.Object) {
		ev.Call("preventDefault")
		c.Submit(readContactForm())
	})
	on(byID("downloadBtn"), "click", func(*js.Object) {
		c.Download(fieldChecked("sendImage"), fieldChecked("sendVideo"))
	})
	on(byID("newExperimentBtn"), "click", func(*js.Object) { c.NewExperiment() })

	contact := func(*js.Object) { c.ContactChanged(fieldValue("email"), fieldValue("phone")) }
	on(byID("email"), "input", contact)
	on(byID("phone"), "input", contact)
}
