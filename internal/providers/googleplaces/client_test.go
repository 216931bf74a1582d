package googleplaces

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GaryKam/lets-eat/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		APIKey:         "test-key",
		BaseURL:        serverURL,
		PhotoMaxWidth:  400,
		PhotoMaxHeight: 300,
		Timeout:        2 * time.Second,
	}, discardLogger())
}

const okResponse = `{
  "html_attributions": [],
  "results": [
    {
      "geometry": {"location": {"lat": 39.1911, "lng": -106.8175}},
      "name": "Mi Chola",
      "photos": [
        {"height": 3024, "html_attributions": [], "photo_reference": "ref-1", "width": 4032},
        {"height": 1200, "html_attributions": [], "photo_reference": "ref-2", "width": 1600}
      ],
      "place_id": "place-1",
      "rating": 4.5,
      "types": ["restaurant", "food"],
      "vicinity": "411 E Hyman Ave, Aspen"
    },
    {
      "geometry": {"location": {"lat": 39.19, "lng": -106.82}},
      "name": "No Photo Diner",
      "place_id": "place-2",
      "types": ["restaurant"]
    }
  ],
  "status": "OK"
}`

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		want        []types.Place
		wantErr     error
		errContains string
	}{
		{
			name:       "successful search",
			statusCode: http.StatusOK,
			body:       okResponse,
			want: []types.Place{
				{
					ID:       "place-1",
					Name:     "Mi Chola",
					Location: types.NewCoords(39.1911, -106.8175),
					Photos:   []types.PhotoReference{"ref-1", "ref-2"},
					Vicinity: "411 E Hyman Ave, Aspen",
					Rating:   4.5,
				},
				{
					ID:       "place-2",
					Name:     "No Photo Diner",
					Location: types.NewCoords(39.19, -106.82),
					Photos:   []types.PhotoReference{},
				},
			},
		},
		{
			name:       "zero results status",
			statusCode: http.StatusOK,
			body:       `{"results": [], "status": "ZERO_RESULTS"}`,
			wantErr:    ErrEmptyResult,
		},
		{
			name:       "ok status with empty list",
			statusCode: http.StatusOK,
			body:       `{"results": [], "status": "OK"}`,
			wantErr:    ErrEmptyResult,
		},
		{
			name:       "request denied",
			statusCode: http.StatusOK,
			body:       `{"results": [], "status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`,
			wantErr:    ErrNetwork,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `oops`,
			wantErr:    ErrNetwork,
		},
		{
			name:       "malformed body",
			statusCode: http.StatusOK,
			body:       `{"results": [`,
			wantErr:    ErrMalformedResponse,
		},
		{
			name:       "missing status",
			statusCode: http.StatusOK,
			body:       `{"results": []}`,
			wantErr:    ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			got, err := client.Search(context.Background(), types.NewCoords(39.19, -106.82), 1609, "restaurant")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Search() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() unexpected error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClient_SearchQuery(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nearbysearch/json" {
			t.Errorf("path = %q, want /nearbysearch/json", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"location": q.Get("location"),
			"radius":   q.Get("radius"),
			"type":     q.Get("type"),
			"key":      q.Get("key"),
		}
		_, _ = io.WriteString(w, okResponse)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	// 80 km exceeds the endpoint maximum and must be clamped
	if _, err := client.Search(context.Background(), types.NewCoords(39.11539, -107.6584), 80000, "restaurant"); err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}

	want := map[string]string{
		"location": "39.115390,-107.658400",
		"radius":   "50000",
		"type":     "restaurant",
		"key":      "test-key",
	}
	if diff := cmp.Diff(want, gotQuery); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_SearchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, types.NewCoords(0, 0), 1000, "restaurant")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Search() error = %v, want ErrNetwork", err)
	}
}

func TestClient_ImageURL(t *testing.T) {
	client := newTestClient("https://example.test/place")

	got := client.ImageURL("abc")
	want := "https://example.test/place/photo?key=test-key&maxheight=300&maxwidth=400&photo_reference=abc"
	if got != want {
		t.Errorf("ImageURL() = %q, want %q", got, want)
	}

	// pure function of its input and config
	if again := client.ImageURL("abc"); again != got {
		t.Errorf("ImageURL() not deterministic: %q vs %q", got, again)
	}
}

func TestClient_FetchPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("photo_reference") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	photo, err := client.FetchPhoto(context.Background(), "good")
	if err != nil {
		t.Fatalf("FetchPhoto() unexpected error = %v", err)
	}
	if photo.ContentType != "image/jpeg" {
		t.Errorf("ContentType = %q, want image/jpeg", photo.ContentType)
	}
	if len(photo.Data) != 3 {
		t.Errorf("len(Data) = %d, want 3", len(photo.Data))
	}

	if _, err := client.FetchPhoto(context.Background(), "bad"); !errors.Is(err, ErrNetwork) {
		t.Errorf("FetchPhoto() error = %v, want ErrNetwork", err)
	}

	client.maxPhoto = 3
	if _, err := client.FetchPhoto(context.Background(), "good"); err != nil {
		t.Errorf("FetchPhoto() at the size limit unexpected error = %v", err)
	}
	client.maxPhoto = 2
	if _, err := client.FetchPhoto(context.Background(), "good"); !errors.Is(err, ErrPhotoTooLarge) || !errors.Is(err, ErrNetwork) {
		t.Errorf("FetchPhoto() over the size limit error = %v, want ErrPhotoTooLarge", err)
	}
}
