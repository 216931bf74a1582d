package selector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/sourcegraph/conc"

	"github.com/GaryKam/lets-eat/internal/location"
	"github.com/GaryKam/lets-eat/internal/permission"
	"github.com/GaryKam/lets-eat/internal/providers/googleplaces"
	"github.com/GaryKam/lets-eat/internal/types"
)

var (
	ErrClosed           = errors.New("selector closed")
	ErrRadiusOutOfRange = errors.New("radius out of range")
)

// maxPendingEvents caps the event queue; the oldest events are dropped first
const maxPendingEvents = 32

// Options holds the search parameters shared by every trigger
type Options struct {
	MinRadius     int
	MaxRadius     int
	UnitMeters    int
	PlaceType     string
	SearchTimeout time.Duration
}

type completion struct {
	id     uint64
	origin types.Coords
	places []types.Place
	err    error
}

// Selector turns "show next place" triggers into display states.
// Every trigger gets a request id; only the completion of the latest id is applied.
type Selector struct {
	searcher PlacesSearcher
	locator  Locator
	chooser  Chooser
	opts     Options
	logger   *slog.Logger

	completions chan completion
	done        chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
	wg          *conc.WaitGroup

	mu          sync.Mutex
	alive       bool
	latest      uint64
	settled     uint64
	state       State
	display     types.DisplayState
	changed     chan struct{}
	subscribers map[int]chan types.DisplayState
	nextSub     int
	events      []Event
}

// New starts a selector. Close must be called to stop its run loop.
func New(searcher PlacesSearcher, locator Locator, chooser Chooser, opts Options, logger *slog.Logger) *Selector {
	if chooser == nil {
		chooser = FirstChooser{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Selector{
		searcher:    searcher,
		locator:     locator,
		chooser:     chooser,
		opts:        opts,
		logger:      logger.With("component", "place-selector"),
		completions: make(chan completion),
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
		wg:          conc.NewWaitGroup(),
		alive:       true,
		state:       StateIdle,
		display:     types.NewAbsentPlace(0, types.ReasonNone),
		changed:     make(chan struct{}),
		subscribers: make(map[int]chan types.DisplayState),
	}
	s.wg.Go(s.run)
	return s
}

// RadiusMeters converts slider units to meters
func (s *Selector) RadiusMeters(units int) int {
	return units * s.opts.UnitMeters
}

// ShowNext starts a new search with the given radius and returns its request id.
// Location problems are reported through State, Display and Events rather than as errors.
func (s *Selector) ShowNext(radiusUnits int) (uint64, error) {
	if radiusUnits < s.opts.MinRadius || radiusUnits > s.opts.MaxRadius {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrRadiusOutOfRange, radiusUnits, s.opts.MinRadius, s.opts.MaxRadius)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive {
		return 0, ErrClosed
	}

	s.latest++
	id := s.latest
	s.state = StateLocating

	if !s.locator.IsAvailable() {
		s.logger.Info("location unavailable, skipping search", "request_id", id)
		s.state = StateError
		s.pushEvent(Event{Kind: EventLocationUnavailable, RequestID: id})
		s.settle(id)
		return id, nil
	}

	origin, ok := s.locator.CurrentLocation()
	if !ok {
		s.logger.Info("no location fix yet", "request_id", id)
		s.state = StateError
		s.publish(types.NewAbsentPlace(id, types.ReasonNoLocation))
		s.settle(id)
		return id, nil
	}

	search := types.SearchConfig{
		RadiusMeters: s.RadiusMeters(radiusUnits),
		PlaceType:    s.opts.PlaceType,
	}
	s.state = StateSearching
	s.logger.Debug("starting search",
		"request_id", id,
		"radius_units", radiusUnits,
		"radius_meters", search.RadiusMeters,
	)
	s.wg.Go(func() {
		s.search(id, origin, search)
	})

	return id, nil
}

func (s *Selector) search(id uint64, origin types.Coords, search types.SearchConfig) {
	ctx := s.ctx
	if s.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SearchTimeout)
		defer cancel()
	}

	places, err := s.searcher.Search(ctx, origin, search.RadiusMeters, search.PlaceType)

	select {
	case s.completions <- completion{id: id, origin: origin, places: places, err: err}:
	case <-s.done:
	}
}

func (s *Selector) run() {
	for {
		select {
		case c := <-s.completions:
			s.apply(c)
		case <-s.done:
			return
		}
	}
}

func (s *Selector) apply(c completion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.alive {
		return
	}
	defer s.settle(c.id)

	if c.id != s.latest {
		s.logger.Debug("discarding stale result", "request_id", c.id, "latest", s.latest)
		return
	}

	if c.err == nil && len(c.places) == 0 {
		c.err = googleplaces.ErrEmptyResult
	}
	if c.err != nil {
		reason := reasonFor(c.err)
		s.logger.Warn("search failed", "request_id", c.id, "reason", reason, "error", c.err)
		s.state = StateError
		s.publish(types.NewAbsentPlace(c.id, reason))
		return
	}

	i := s.chooser.Choose(c.places)
	if i < 0 || i >= len(c.places) {
		i = 0
	}
	place := c.places[i]
	distance := geo.Distance(
		orb.Point{c.origin.Longitude, c.origin.Latitude},
		orb.Point{place.Location.Longitude, place.Location.Latitude},
	)

	s.logger.Debug("displaying place",
		"request_id", c.id,
		"place_id", place.ID,
		"candidates", len(c.places),
		"distance_meters", distance,
	)
	s.state = StateDisplaying
	s.publish(types.NewDisplayedPlace(c.id, place, distance))
}

// HandlePermissionResult reacts to the outcome of a permission request
func (s *Selector) HandlePermissionResult(result permission.Result, radiusUnits int) (Reaction, error) {
	switch result.Outcome {
	case permission.OutcomeGranted:
		id, err := s.ShowNext(radiusUnits)
		if err != nil {
			return Reaction{}, err
		}
		return Reaction{RequestID: id}, nil

	case permission.OutcomeDenied:
		if !result.ShouldShowRationale {
			s.logger.Info("location permission denied", "request_code", result.RequestCode)
			return Reaction{}, nil
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.alive {
			return Reaction{}, ErrClosed
		}
		s.pushEvent(Event{Kind: EventPermissionRationale, RequestCode: result.RequestCode})
		return Reaction{RationaleShown: true}, nil

	default:
		s.logger.Info("permission request interrupted", "request_code", result.RequestCode)
		return Reaction{}, nil
	}
}

func (s *Selector) Display() types.DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events drains the pending notices and dialogs
func (s *Selector) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// Subscribe returns a channel that always holds the most recent display state.
// Slow readers only ever see the latest value. The returned func unsubscribes.
func (s *Selector) Subscribe() (<-chan types.DisplayState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan types.DisplayState, 1)
	if !s.alive {
		close(ch)
		return ch, func() {}
	}

	key := s.nextSub
	s.nextSub++
	s.subscribers[key] = ch
	ch <- s.display

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[key]; ok {
			delete(s.subscribers, key)
			close(sub)
		}
	}
}

// Await blocks until request id has settled or been superseded, then returns the display state
func (s *Selector) Await(ctx context.Context, id uint64) (types.DisplayState, error) {
	for {
		s.mu.Lock()
		display, alive, settled, changed := s.display, s.alive, s.settled, s.changed
		s.mu.Unlock()

		if !alive {
			return display, ErrClosed
		}
		if settled >= id {
			return display, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return display, ctx.Err()
		}
	}
}

// Close stops the selector. In-flight searches are cancelled and their results ignored.
func (s *Selector) Close() {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	s.alive = false
	close(s.done)
	s.cancel()
	close(s.changed)
	s.changed = make(chan struct{})
	for key, ch := range s.subscribers {
		delete(s.subscribers, key)
		close(ch)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Debug("selector closed")
}

// publish must be called with mu held
func (s *Selector) publish(display types.DisplayState) {
	s.display = display
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- display
	}
}

// pushEvent must be called with mu held
func (s *Selector) pushEvent(e Event) {
	if len(s.events) >= maxPendingEvents {
		s.events = s.events[1:]
	}
	s.events = append(s.events, e)
}

// settle must be called with mu held
func (s *Selector) settle(id uint64) {
	if id > s.settled {
		s.settled = id
	}
	close(s.changed)
	s.changed = make(chan struct{})
}

func reasonFor(err error) types.Reason {
	switch {
	case errors.Is(err, googleplaces.ErrEmptyResult):
		return types.ReasonEmptyResult
	case errors.Is(err, permission.ErrDenied):
		return types.ReasonPermissionDenied
	case errors.Is(err, location.ErrUnavailable), errors.Is(err, location.ErrNoFix):
		return types.ReasonLocationUnavailable
	default:
		return types.ReasonNetworkError
	}
}
