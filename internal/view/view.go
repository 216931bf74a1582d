package view

import (
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/GaryKam/lets-eat/internal/selector"
	"github.com/GaryKam/lets-eat/internal/types"
)

// Fixed copy shown to the user
const (
	ErrorNoPlace              = "Couldn't find a place to eat nearby."
	NoticeLocationUnavailable = "Location services are off. Turn them on to find places nearby."
	PermissionTitle           = "Location permission"
	PermissionRationale       = "Let's Eat uses your location to find places to eat nearby."
)

const (
	radiusLabelKey = "radius.label"
	distanceKey    = "distance.label"
)

var printer = sync.OnceValue(func() *message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	if err := b.Set(language.English, radiusLabelKey,
		plural.Selectf(1, "%d",
			"one", "%d mile",
			"other", "%d miles",
		)); err != nil {
		panic(err)
	}
	if err := b.SetString(language.English, distanceKey, "%.1f miles away"); err != nil {
		panic(err)
	}
	return message.NewPrinter(language.English, message.Catalog(b))
})

// RadiusLabel renders the slider label, e.g. "1 mile" or "5 miles"
func RadiusLabel(n int) string {
	return printer().Sprintf(radiusLabelKey, n)
}

// Screen is everything the page shows for one display state
type Screen struct {
	RequestID uint64       `json:"requestId"`
	State     string       `json:"state"`
	Reason    types.Reason `json:"reason"`
	Name      string       `json:"name,omitempty"`
	Vicinity  string       `json:"vicinity,omitempty"`
	Rating    float64      `json:"rating,omitempty"`
	Distance  string       `json:"distance,omitempty"`
	Message   string       `json:"message,omitempty"`
	ShowImage bool         `json:"showImage"`
	ImageURL  string       `json:"imageUrl,omitempty"`
}

// Notice is a rendered one-off event
type Notice struct {
	Kind        selector.EventKind `json:"kind"`
	Title       string             `json:"title,omitempty"`
	Message     string             `json:"message"`
	RequestCode int                `json:"requestCode,omitempty"`
}

// ImageURLFunc turns a photo reference into a displayable URL
type ImageURLFunc func(ref types.PhotoReference) string

type Renderer struct {
	imageURL   ImageURLFunc
	unitMeters int
}

func NewRenderer(imageURL ImageURLFunc, unitMeters int) *Renderer {
	return &Renderer{
		imageURL:   imageURL,
		unitMeters: unitMeters,
	}
}

// Render builds the screen for a display state. The idle state (nothing requested yet) shows neither text nor image.
func (r *Renderer) Render(display types.DisplayState, state selector.State) Screen {
	screen := Screen{
		RequestID: display.RequestID,
		State:     state.String(),
		Reason:    display.Reason,
	}

	if display.Place == nil {
		if display.RequestID != 0 || display.Reason != types.ReasonNone {
			screen.Message = ErrorNoPlace
		}
		return screen
	}

	place := display.Place
	screen.Name = place.Name
	screen.Vicinity = place.Vicinity
	screen.Rating = place.Rating
	if r.unitMeters > 0 {
		screen.Distance = printer().Sprintf(distanceKey, display.DistanceMeters/float64(r.unitMeters))
	}

	// a place without photos clears the image
	if ref, ok := place.FirstPhoto(); ok && r.imageURL != nil {
		screen.ShowImage = true
		screen.ImageURL = r.imageURL(ref)
	}

	return screen
}

// RenderEvents turns queued selector events into user-facing notices
func RenderEvents(events []selector.Event) []Notice {
	notices := make([]Notice, 0, len(events))
	for _, e := range events {
		switch e.Kind {
		case selector.EventLocationUnavailable:
			notices = append(notices, Notice{Kind: e.Kind, Message: NoticeLocationUnavailable})
		case selector.EventPermissionRationale:
			notices = append(notices, Notice{
				Kind:        e.Kind,
				Title:       PermissionTitle,
				Message:     PermissionRationale,
				RequestCode: e.RequestCode,
			})
		}
	}
	return notices
}
