package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/GaryKam/lets-eat/internal/types"
)

// API Docs: https://ip-api.com/docs/api:json
// Sample request: http://ip-api.com/json
const (
	baseURL = "http://ip-api.com/json"
)

// Client geolocates the public address of this host. It is the coarse
// network provider used when no device fix is available.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(url string, logger *slog.Logger) *Client {
	if url == "" {
		url = baseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    url,
		logger:     logger.With("component", "ipapi-client"),
	}
}

// Enabled always reports true; the network provider has no on/off switch
func (c *Client) Enabled() bool {
	return true
}

// RequestFix looks up the coordinates of the caller's public IP
func (c *Client) RequestFix(ctx context.Context) (types.Coords, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return types.Coords{}, fmt.Errorf("failed to build request: %w", err)
	}

	c.logger.Debug("requesting ip geolocation", "url", c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Coords{}, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return types.Coords{}, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp LookupAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return types.Coords{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Status != "success" {
		return types.Coords{}, fmt.Errorf("lookup failed: %s", apiResp.Message)
	}

	c.logger.Debug("resolved ip geolocation",
		"city", apiResp.City,
		"country_code", apiResp.CountryCode,
	)

	return types.NewCoords(apiResp.Lat, apiResp.Lon), nil
}
