package page

import (
	"errors"
	"testing"

	"github.com/simukka/cymatics-kiosk/api"
)

func newCollection(b *fakeBackend) (*Collection, *fakeView) {
	v := &fakeView{}
	return NewCollection(b, v, Inline), v
}

func okResult() *api.Result {
	return &api.Result{Status: api.StatusSuccess, Frequency: 432, ImagePath: "/captures/1.jpg"}
}

func TestCollection_InitShowsResult(t *testing.T) {
	c, v := newCollection(&fakeBackend{result: okResult()})
	c.Init()

	if v.result == nil || v.result.Frequency != 432 || len(v.navigated) != 0 {
		t.Errorf("Expected the result to be shown, got %+v (navigated %v)", v.result, v.navigated)
	}
	if !v.emailRequired || !v.phoneRequired {
		t.Error("Expected both contact inputs to start required")
	}
}

func TestCollection_InitRedirectsWithoutResult(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
	}{
		{"error", &fakeBackend{resErr: errBackend}},
		{"not successful", &fakeBackend{result: &api.Result{Status: "error"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, v := newCollection(tt.backend)
			c.Init()
			if len(v.navigated) != 1 || v.navigated[0] != HomePath {
				t.Errorf("Expected redirect to %s, got %v", HomePath, v.navigated)
			}
			if c.Result() != nil {
				t.Error("Expected no result")
			}
		})
	}
}

func TestCollection_SubmitValidates(t *testing.T) {
	b := &fakeBackend{result: okResult()}
	c, v := newCollection(b)
	c.Init()

	err := c.Submit(ContactForm{Name: "Ada"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation, got %v", err)
	}
	if len(v.alerts) != 1 || v.alerts[0] != "Please provide either an email address or phone number" {
		t.Errorf("Unexpected alerts %v", v.alerts)
	}
	if len(b.saved) != 0 {
		t.Error("Expected nothing to be saved")
	}
}

func TestCollection_SubmitSaves(t *testing.T) {
	b := &fakeBackend{result: okResult()}
	c, v := newCollection(b)
	c.Init()

	if err := c.Submit(ContactForm{Name: "Ada", Email: "ada@example.com", SendImage: true}); err != nil {
		t.Fatal(err)
	}
	if len(b.saved) != 1 || b.saved[0].Email != "ada@example.com" || !b.saved[0].SendImage {
		t.Errorf("Unexpected saved submissions %v", b.saved)
	}
	if !v.success {
		t.Error("Expected the success message")
	}
}

func TestCollection_SubmitSaveFailure(t *testing.T) {
	b := &fakeBackend{result: okResult(), saveErr: errBackend}
	c, v := newCollection(b)
	c.Init()

	if err := c.Submit(ContactForm{Phone: "555 123 4567"}); err != nil {
		t.Fatal(err)
	}
	if v.success || len(v.alerts) != 1 || v.alerts[0] != SaveFailedMessage {
		t.Errorf("Expected a save failure alert, got %v", v.alerts)
	}
}

func TestCollection_Download(t *testing.T) {
	res := okResult()
	res.VideoPath = "/captures/1.mp4"
	c, v := newCollection(&fakeBackend{result: res})

	c.Download(true, true)
	if len(v.downloads) != 0 {
		t.Error("Expected no downloads before the result loads")
	}

	c.Init()
	c.Download(true, true)
	expected := []string{"/captures/1.jpg as cymatics-pattern.jpg", "/captures/1.mp4 as cymatics-video.mp4"}
	if len(v.downloads) != 2 || v.downloads[0] != expected[0] || v.downloads[1] != expected[1] {
		t.Errorf("Expected %v, got %v", expected, v.downloads)
	}

	v.downloads = nil
	c.Download(false, true)
	if len(v.downloads) != 1 {
		t.Errorf("Expected only the video, got %v", v.downloads)
	}
}

func TestCollection_ContactChangedAndNavigation(t *testing.T) {
	c, v := newCollection(&fakeBackend{result: okResult()})
	c.ContactChanged("", "555")
	if v.emailRequired || !v.phoneRequired {
		t.Error("Expected a phone number to release the email requirement")
	}
	c.NewExperiment()
	if len(v.navigated) != 1 || v.navigated[0] != HomePath {
		t.Errorf("Expected navigation home, got %v", v.navigated)
	}
}
