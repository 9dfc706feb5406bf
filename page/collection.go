package page

import (
	"context"
	"errors"

	"github.com/simukka/cymatics-kiosk/api"
	"github.com/simukka/cymatics-kiosk/common"
)

// HomePath is the selector page.
const HomePath = "/"

// Download file names offered to the visitor.
const (
	ImageFileName = "cymatics-pattern.jpg"
	VideoFileName = "cymatics-video.mp4"
)

const SaveFailedMessage = "Error saving your creation. Please try again."

// CollectionBackend is the part of the REST API the collection page uses.
type CollectionBackend interface {
	Result(ctx context.Context) (*api.Result, error)
	Save(ctx context.Context, sub api.Submission) error
}

// CollectionView is the collection page's DOM.
type CollectionView interface {
	ShowResult(res api.Result)
	SetContactRequired(email, phone bool)
	Alert(msg string)
	ShowSuccess()
	Download(url, filename string)
	Navigate(path string)
}

// Collection drives the page where visitors leave contact details and
// download their capture.
type Collection struct {
	backend CollectionBackend
	view    CollectionView
	async   Async

	ctx    context.Context
	cancel context.CancelFunc

	result *api.Result
	saving bool
}

// NewCollection creates the collection page controller. A nil async runs
// backend calls on goroutines.
func NewCollection(backend CollectionBackend, view CollectionView, async Async) *Collection {
	if async == nil {
		async = Goroutine
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Collection{backend: backend, view: view, async: async, ctx: ctx, cancel: cancel}
}

// Init loads the last result. Without one the visitor goes back to the
// selector.
func (c *Collection) Init() {
	c.view.SetContactRequired(ContactRequirements("", ""))
	c.async(func() {
		res, err := c.backend.Result(c.ctx)
		if err == nil && !res.OK() {
			err = errors.New("no experiment data found")
		}
		if err != nil {
			common.DebugError("Error loading experiment result:", err.Error())
			c.view.Navigate(HomePath)
			return
		}
		c.result = res
		c.view.ShowResult(*res)
	})
}

// Result returns the loaded result, or nil.
func (c *Collection) Result() *api.Result {
	return c.result
}

// ContactChanged updates which contact inputs are required.
func (c *Collection) ContactChanged(email, phone string) {
	c.view.SetContactRequired(ContactRequirements(email, phone))
}

// Submit validates the form and saves it. Validation failures are shown
// and returned without contacting the backend.
func (c *Collection) Submit(form ContactForm) error {
	if err := form.Validate(); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			c.view.Alert(ve.Message)
		}
		return err
	}
	if c.saving {
		return nil
	}
	c.saving = true
	sub := form.Submission()
	c.async(func() {
		defer func() { c.saving = false }()
		if err := c.backend.Save(c.ctx, sub); err != nil {
			common.DebugError("Error saving experiment:", err.Error())
			c.view.Alert(SaveFailedMessage)
			return
		}
		c.view.ShowSuccess()
	})
	return nil
}

// Download offers the image and, when one was recorded, the video.
func (c *Collection) Download(image, video bool) {
	if c.result == nil {
		return
	}
	if image && c.result.ImagePath != "" {
		c.view.Download(c.result.ImagePath, ImageFileName)
	}
	if video && c.result.VideoPath != "" {
		c.view.Download(c.result.VideoPath, VideoFileName)
	}
}

// NewExperiment returns to the selector.
func (c *Collection) NewExperiment() {
	c.view.Navigate(HomePath)
}

// Close abandons any request still in flight.
func (c *Collection) Close() {
	c.cancel()
}
