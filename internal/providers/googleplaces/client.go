package googleplaces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/GaryKam/lets-eat/internal/types"
)

// API Docs: https://developers.google.com/maps/documentation/places/web-service/search-nearby
// Sample request: https://maps.googleapis.com/maps/api/place/nearbysearch/json?location=39.11,-107.65&radius=1609&type=restaurant&key=KEY
const (
	baseURL = "https://maps.googleapis.com/maps/api/place"

	// MaxRadiusMeters is the largest radius the Nearby Search endpoint accepts
	MaxRadiusMeters = 50000

	defaultMaxPhotoBytes = 10 << 20
)

var (
	// ErrNetwork covers transport failures, timeouts, non-200 responses and API error statuses
	ErrNetwork = errors.New("places request failed")
	// ErrMalformedResponse is returned when the response body cannot be decoded
	ErrMalformedResponse = errors.New("malformed places response")
	// ErrPhotoTooLarge is returned when a photo exceeds the download limit
	ErrPhotoTooLarge = fmt.Errorf("%w: photo too large", ErrNetwork)
	// ErrEmptyResult is returned when a search succeeds with zero matches
	ErrEmptyResult = errors.New("no places found")
)

// APIError is a non-OK status reported in the response body
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("places API returned status %s", e.Status)
	}
	return fmt.Sprintf("places API returned status %s: %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrNetwork) match API errors
func (e *APIError) Is(target error) bool {
	return target == ErrNetwork
}

// Config configures the client
type Config struct {
	APIKey         string
	BaseURL        string
	PhotoMaxWidth  int
	PhotoMaxHeight int
	Timeout        time.Duration
}

// Photo is a downloaded place photo
type Photo struct {
	Data        []byte
	ContentType string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxWidth   int
	maxHeight  int
	maxPhoto   int64
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = baseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(base, "/"),
		apiKey:     cfg.APIKey,
		maxWidth:   cfg.PhotoMaxWidth,
		maxHeight:  cfg.PhotoMaxHeight,
		maxPhoto:   defaultMaxPhotoBytes,
		logger:     logger.With("component", "googleplaces-client"),
	}
}

// Search runs a Nearby Search around location and returns the parsed places
func (c *Client) Search(ctx context.Context, location types.Coords, radiusMeters int, placeType string) ([]types.Place, error) {
	u, err := url.Parse(c.baseURL + "/nearbysearch/json")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	radiusMeters = min(radiusMeters, MaxRadiusMeters)

	q := u.Query()
	q.Set("location", fmt.Sprintf("%f,%f", location.Latitude, location.Longitude))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", placeType)
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	c.logger.Debug("searching nearby places",
		"latitude", location.Latitude,
		"longitude", location.Longitude,
		"radius_meters", radiusMeters,
		"type", placeType,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch nearby places", "error", err)
		return nil, fmt.Errorf("%w: failed to fetch: %v", ErrNetwork, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("nearby search returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("%w: fetch returned status %d: %s", ErrNetwork, resp.StatusCode, string(body))
	}

	var apiResp NearbySearchAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode nearby search response", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch apiResp.Status {
	case StatusOK:
	case StatusZeroResults:
		return nil, ErrEmptyResult
	case "":
		return nil, fmt.Errorf("%w: missing status", ErrMalformedResponse)
	default:
		c.logger.Error("nearby search returned API error",
			"status", apiResp.Status,
			"message", apiResp.ErrorMessage,
		)
		return nil, &APIError{Status: apiResp.Status, Message: apiResp.ErrorMessage}
	}

	places := make([]types.Place, 0, len(apiResp.Results))
	for _, result := range apiResp.Results {
		places = append(places, translatePlace(result))
	}
	if len(places) == 0 {
		return nil, ErrEmptyResult
	}

	c.logger.Debug("successfully fetched nearby places", "count", len(places))

	return places, nil
}

// ImageURL builds the photo endpoint URL for ref. It makes no network call.
func (c *Client) ImageURL(ref types.PhotoReference) string {
	q := url.Values{}
	q.Set("maxwidth", strconv.Itoa(c.maxWidth))
	q.Set("maxheight", strconv.Itoa(c.maxHeight))
	q.Set("photo_reference", string(ref))
	q.Set("key", c.apiKey)
	return c.baseURL + "/photo?" + q.Encode()
}

// FetchPhoto downloads the image behind ref
func (c *Client) FetchPhoto(ctx context.Context, ref types.PhotoReference) (*Photo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(ref), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch photo", "error", err)
		return nil, fmt.Errorf("%w: failed to fetch photo: %v", ErrNetwork, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("photo endpoint returned error", "status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: photo fetch returned status %d", ErrNetwork, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxPhoto+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read photo: %v", ErrNetwork, err)
	}
	if int64(len(data)) > c.maxPhoto {
		c.logger.Error("photo exceeds size limit", "limit_bytes", c.maxPhoto)
		return nil, ErrPhotoTooLarge
	}

	return &Photo{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func translatePlace(result PlaceResult) types.Place {
	photos := make([]types.PhotoReference, 0, len(result.Photos))
	for _, p := range result.Photos {
		if p.PhotoReference != "" {
			photos = append(photos, types.PhotoReference(p.PhotoReference))
		}
	}
	return types.Place{
		ID:       result.PlaceID,
		Name:     result.Name,
		Location: types.NewCoords(result.Geometry.Location.Lat, result.Geometry.Location.Lng),
		Photos:   photos,
		Vicinity: result.Vicinity,
		Rating:   result.Rating,
	}
}
