package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GaryKam/lets-eat/internal/location"
	"github.com/GaryKam/lets-eat/internal/permission"
	"github.com/GaryKam/lets-eat/internal/providers/googleplaces"
	"github.com/GaryKam/lets-eat/internal/types"
)

// Mock dependencies for testing

type searchResponse struct {
	places  []types.Place
	err     error
	release chan struct{} // when set, the call blocks until closed
}

type mockSearcher struct {
	mu        sync.Mutex
	calls     int
	radii     []int
	responses []searchResponse
}

func (m *mockSearcher) Search(ctx context.Context, loc types.Coords, radiusMeters int, placeType string) ([]types.Place, error) {
	m.mu.Lock()
	i := m.calls
	m.calls++
	m.radii = append(m.radii, radiusMeters)
	var r searchResponse
	if i < len(m.responses) {
		r = m.responses[i]
	}
	m.mu.Unlock()

	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", googleplaces.ErrNetwork, ctx.Err())
		}
	}
	return r.places, r.err
}

func (m *mockSearcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockLocator struct {
	available bool
	fix       *types.Coords
}

func (m *mockLocator) IsAvailable() bool {
	return m.available
}

func (m *mockLocator) CurrentLocation() (types.Coords, bool) {
	if m.fix == nil {
		return types.Coords{}, false
	}
	return *m.fix, true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	origin = types.NewCoords(39.1911, -106.8175)

	placeA = types.Place{
		ID:       "a",
		Name:     "Mi Chola",
		Location: types.NewCoords(39.1911, -106.8175),
		Photos:   []types.PhotoReference{"ref-a"},
	}
	placeB = types.Place{
		ID:       "b",
		Name:     "Jimmy's",
		Location: types.NewCoords(39.1890, -106.8190),
		Photos:   []types.PhotoReference{"ref-b"},
	}
	placeNoPhotos = types.Place{
		ID:       "c",
		Name:     "No Photo Diner",
		Location: types.NewCoords(39.19, -106.82),
		Photos:   []types.PhotoReference{},
	}
)

func testOptions() Options {
	return Options{
		MinRadius:     1,
		MaxRadius:     50,
		UnitMeters:    1609,
		PlaceType:     "restaurant",
		SearchTimeout: 2 * time.Second,
	}
}

func newTestSelector(t *testing.T, searcher PlacesSearcher, locator Locator) *Selector {
	t.Helper()
	s := New(searcher, locator, FirstChooser{}, testOptions(), discardLogger())
	t.Cleanup(s.Close)
	return s
}

func availableLocator() *mockLocator {
	fix := origin
	return &mockLocator{available: true, fix: &fix}
}

func waitForCalls(t *testing.T, m *mockSearcher, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for m.callCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Search called %d times, want %d", m.callCount(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func await(t *testing.T, s *Selector, id uint64) types.DisplayState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	display, err := s.Await(ctx, id)
	if err != nil {
		t.Fatalf("Await(%d) unexpected error = %v", id, err)
	}
	return display
}

func TestSelector_ShowNext(t *testing.T) {
	tests := []struct {
		name       string
		response   searchResponse
		wantState  State
		wantReason types.Reason
		wantPlace  *types.Place
	}{
		{
			name:       "displays chosen place",
			response:   searchResponse{places: []types.Place{placeA, placeB}},
			wantState:  StateDisplaying,
			wantReason: types.ReasonNone,
			wantPlace:  &placeA,
		},
		{
			name:       "place without photos",
			response:   searchResponse{places: []types.Place{placeNoPhotos}},
			wantState:  StateDisplaying,
			wantReason: types.ReasonNone,
			wantPlace:  &placeNoPhotos,
		},
		{
			name:       "empty result error",
			response:   searchResponse{err: googleplaces.ErrEmptyResult},
			wantState:  StateError,
			wantReason: types.ReasonEmptyResult,
		},
		{
			name:       "empty list without error",
			response:   searchResponse{places: []types.Place{}},
			wantState:  StateError,
			wantReason: types.ReasonEmptyResult,
		},
		{
			name:       "network error",
			response:   searchResponse{err: fmt.Errorf("%w: connection refused", googleplaces.ErrNetwork)},
			wantState:  StateError,
			wantReason: types.ReasonNetworkError,
		},
		{
			name:       "malformed response",
			response:   searchResponse{err: googleplaces.ErrMalformedResponse},
			wantState:  StateError,
			wantReason: types.ReasonNetworkError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &mockSearcher{responses: []searchResponse{tt.response}}
			s := newTestSelector(t, searcher, availableLocator())

			id, err := s.ShowNext(5)
			if err != nil {
				t.Fatalf("ShowNext() unexpected error = %v", err)
			}
			if id != 1 {
				t.Errorf("ShowNext() id = %d, want 1", id)
			}

			display := await(t, s, id)
			if got := s.State(); got != tt.wantState {
				t.Errorf("State() = %v, want %v", got, tt.wantState)
			}
			if display.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", display.Reason, tt.wantReason)
			}
			if display.RequestID != id {
				t.Errorf("RequestID = %d, want %d", display.RequestID, id)
			}
			if diff := cmp.Diff(tt.wantPlace, display.Place); diff != "" {
				t.Errorf("Place mismatch (-want +got):\n%s", diff)
			}
			if searcher.radii[0] != 5*1609 {
				t.Errorf("search radius = %d, want %d", searcher.radii[0], 5*1609)
			}
		})
	}
}

func TestSelector_LocationUnavailable(t *testing.T) {
	searcher := &mockSearcher{}
	s := newTestSelector(t, searcher, &mockLocator{available: false})
	before := s.Display()

	id, err := s.ShowNext(3)
	if err != nil {
		t.Fatalf("ShowNext() unexpected error = %v", err)
	}

	display := await(t, s, id)
	if searcher.callCount() != 0 {
		t.Errorf("Search called %d times, want 0", searcher.callCount())
	}
	if got := s.State(); got != StateError {
		t.Errorf("State() = %v, want %v", got, StateError)
	}
	if diff := cmp.Diff(before, display); diff != "" {
		t.Errorf("display changed (-before +after):\n%s", diff)
	}

	events := s.Events()
	want := []Event{{Kind: EventLocationUnavailable, RequestID: id}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("Events() mismatch (-want +got):\n%s", diff)
	}
	if again := s.Events(); len(again) != 0 {
		t.Errorf("Events() not drained, got %v", again)
	}
}

func TestSelector_NoFix(t *testing.T) {
	searcher := &mockSearcher{}
	s := newTestSelector(t, searcher, &mockLocator{available: true})

	id, err := s.ShowNext(3)
	if err != nil {
		t.Fatalf("ShowNext() unexpected error = %v", err)
	}

	display := await(t, s, id)
	if searcher.callCount() != 0 {
		t.Errorf("Search called %d times, want 0", searcher.callCount())
	}
	if display.Reason != types.ReasonNoLocation || !display.Empty() {
		t.Errorf("display = %+v, want cleared with %q", display, types.ReasonNoLocation)
	}
}

func TestSelector_ErrorClearsPriorPlace(t *testing.T) {
	searcher := &mockSearcher{responses: []searchResponse{
		{places: []types.Place{placeA}},
		{err: googleplaces.ErrNetwork},
	}}
	s := newTestSelector(t, searcher, availableLocator())

	first, _ := s.ShowNext(1)
	if display := await(t, s, first); display.Empty() {
		t.Fatalf("first search displayed nothing: %+v", display)
	}

	second, _ := s.ShowNext(1)
	display := await(t, s, second)
	if !display.Empty() || display.Reason != types.ReasonNetworkError {
		t.Errorf("display = %+v, want cleared with %q", display, types.ReasonNetworkError)
	}
}

func TestSelector_StaleResultDiscarded(t *testing.T) {
	releaseA := make(chan struct{})
	searcher := &mockSearcher{responses: []searchResponse{
		{places: []types.Place{placeA}, release: releaseA},
		{places: []types.Place{placeB}},
	}}
	s := newTestSelector(t, searcher, availableLocator())

	idA, _ := s.ShowNext(2)
	waitForCalls(t, searcher, 1)
	idB, _ := s.ShowNext(2)
	if idB <= idA {
		t.Fatalf("request ids not increasing: %d then %d", idA, idB)
	}

	display := await(t, s, idB)
	if display.Place == nil || display.Place.ID != placeB.ID {
		t.Fatalf("display = %+v, want place %q", display, placeB.ID)
	}

	// superseded request is settled too
	if _, err := s.Await(context.Background(), idA); err != nil {
		t.Fatalf("Await(%d) unexpected error = %v", idA, err)
	}

	s.mu.Lock()
	changed := s.changed
	s.mu.Unlock()

	close(releaseA)
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("late result for superseded request was never processed")
	}

	display = s.Display()
	if display.Place == nil || display.Place.ID != placeB.ID || display.RequestID != idB {
		t.Errorf("late result overwrote display: %+v", display)
	}
	if got := s.State(); got != StateDisplaying {
		t.Errorf("State() = %v, want %v", got, StateDisplaying)
	}
}

func TestSelector_RadiusOutOfRange(t *testing.T) {
	searcher := &mockSearcher{}
	s := newTestSelector(t, searcher, availableLocator())

	for _, radius := range []int{0, 51, -3} {
		if _, err := s.ShowNext(radius); !errors.Is(err, ErrRadiusOutOfRange) {
			t.Errorf("ShowNext(%d) error = %v, want ErrRadiusOutOfRange", radius, err)
		}
	}
	if got := s.State(); got != StateIdle {
		t.Errorf("State() = %v, want %v", got, StateIdle)
	}
}

func TestSelector_HandlePermissionResult(t *testing.T) {
	tests := []struct {
		name         string
		result       permission.Result
		wantSearches int
		wantEvents   []Event
		wantReaction Reaction
	}{
		{
			name:         "granted triggers one search",
			result:       permission.Result{RequestCode: 1, Outcome: permission.OutcomeGranted},
			wantSearches: 1,
			wantReaction: Reaction{RequestID: 1},
		},
		{
			name:         "denied with rationale shows one dialog",
			result:       permission.Result{RequestCode: 2, Outcome: permission.OutcomeDenied, ShouldShowRationale: true},
			wantEvents:   []Event{{Kind: EventPermissionRationale, RequestCode: 2}},
			wantReaction: Reaction{RationaleShown: true},
		},
		{
			name:   "denied without rationale does nothing",
			result: permission.Result{RequestCode: 3, Outcome: permission.OutcomeDenied},
		},
		{
			name:   "interrupted does nothing",
			result: permission.Result{RequestCode: 4, Outcome: permission.OutcomeInterrupted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &mockSearcher{responses: []searchResponse{{places: []types.Place{placeA}}}}
			s := newTestSelector(t, searcher, availableLocator())

			reaction, err := s.HandlePermissionResult(tt.result, 5)
			if err != nil {
				t.Fatalf("HandlePermissionResult() unexpected error = %v", err)
			}
			if reaction != tt.wantReaction {
				t.Errorf("Reaction = %+v, want %+v", reaction, tt.wantReaction)
			}
			if reaction.RequestID != 0 {
				await(t, s, reaction.RequestID)
			}

			if got := searcher.callCount(); got != tt.wantSearches {
				t.Errorf("Search called %d times, want %d", got, tt.wantSearches)
			}
			if diff := cmp.Diff(tt.wantEvents, s.Events()); diff != "" {
				t.Errorf("Events() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelector_Close(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	searcher := &mockSearcher{responses: []searchResponse{{places: []types.Place{placeA}, release: release}}}
	s := New(searcher, availableLocator(), FirstChooser{}, testOptions(), discardLogger())

	updates, _ := s.Subscribe()
	<-updates

	id, err := s.ShowNext(1)
	if err != nil {
		t.Fatalf("ShowNext() unexpected error = %v", err)
	}

	s.Close()
	s.Close()

	if display := s.Display(); !display.Empty() {
		t.Errorf("display after close = %+v, want empty", display)
	}
	if _, err := s.ShowNext(1); !errors.Is(err, ErrClosed) {
		t.Errorf("ShowNext() after Close error = %v, want ErrClosed", err)
	}
	if _, err := s.Await(context.Background(), id); !errors.Is(err, ErrClosed) {
		t.Errorf("Await() after Close error = %v, want ErrClosed", err)
	}
	if _, ok := <-updates; ok {
		t.Error("subscription channel still open after Close")
	}
}

func TestSelector_Subscribe(t *testing.T) {
	searcher := &mockSearcher{responses: []searchResponse{
		{places: []types.Place{placeA}},
		{places: []types.Place{placeB}},
	}}
	s := newTestSelector(t, searcher, availableLocator())

	updates, unsubscribe := s.Subscribe()
	initial := <-updates
	if initial.RequestID != 0 || !initial.Empty() {
		t.Errorf("initial state = %+v, want empty", initial)
	}

	first, _ := s.ShowNext(1)
	await(t, s, first)
	second, _ := s.ShowNext(1)
	await(t, s, second)

	// only the latest value is retained
	latest := <-updates
	if latest.RequestID != second || latest.Place == nil || latest.Place.ID != placeB.ID {
		t.Errorf("latest update = %+v, want request %d showing %q", latest, second, placeB.ID)
	}
	select {
	case extra := <-updates:
		t.Errorf("unexpected extra update %+v", extra)
	default:
	}

	unsubscribe()
	unsubscribe()
	if _, ok := <-updates; ok {
		t.Error("channel still open after unsubscribe")
	}
}

func TestSelector_AwaitContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	searcher := &mockSearcher{responses: []searchResponse{{places: []types.Place{placeA}, release: release}}}
	s := newTestSelector(t, searcher, availableLocator())

	id, _ := s.ShowNext(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := s.Await(ctx, id); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await() error = %v, want deadline exceeded", err)
	}
	if got := s.State(); got != StateSearching {
		t.Errorf("State() = %v, want %v", got, StateSearching)
	}
}

func TestSelector_Distance(t *testing.T) {
	far := types.Place{ID: "far", Name: "Far", Location: types.NewCoords(39.1911, -105.8175)}
	searcher := &mockSearcher{responses: []searchResponse{
		{places: []types.Place{placeA}},
		{places: []types.Place{far}},
	}}
	s := newTestSelector(t, searcher, availableLocator())

	id, _ := s.ShowNext(1)
	if display := await(t, s, id); display.DistanceMeters != 0 {
		t.Errorf("DistanceMeters = %f, want 0 for a place at the fix", display.DistanceMeters)
	}

	// one degree of longitude at ~39N is roughly 86 km
	id, _ = s.ShowNext(50)
	display := await(t, s, id)
	if display.DistanceMeters < 80000 || display.DistanceMeters > 92000 {
		t.Errorf("DistanceMeters = %f, want about 86 km", display.DistanceMeters)
	}
}

func TestReasonFor(t *testing.T) {
	tests := []struct {
		err  error
		want types.Reason
	}{
		{googleplaces.ErrEmptyResult, types.ReasonEmptyResult},
		{fmt.Errorf("search: %w", googleplaces.ErrNetwork), types.ReasonNetworkError},
		{&googleplaces.APIError{Status: "OVER_QUERY_LIMIT"}, types.ReasonNetworkError},
		{googleplaces.ErrMalformedResponse, types.ReasonNetworkError},
		{permission.ErrDenied, types.ReasonPermissionDenied},
		{location.ErrUnavailable, types.ReasonLocationUnavailable},
		{fmt.Errorf("%w: %w", location.ErrNoFix, context.DeadlineExceeded), types.ReasonLocationUnavailable},
		{context.DeadlineExceeded, types.ReasonNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := reasonFor(tt.err); got != tt.want {
				t.Errorf("reasonFor(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateLocating, "locating"},
		{StateSearching, "searching"},
		{StateDisplaying, "displaying"},
		{StateError, "error"},
		{State(42), "unknown (42)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
