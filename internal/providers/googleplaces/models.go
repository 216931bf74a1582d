package googleplaces

// NearbySearchAPIResponse is the body of a Nearby Search request
type NearbySearchAPIResponse struct {
	HTMLAttributions []string      `json:"html_attributions"`
	NextPageToken    string        `json:"next_page_token"`
	Results          []PlaceResult `json:"results"`
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
}

type PlaceResult struct {
	BusinessStatus   string   `json:"business_status,omitempty"`
	Geometry         Geometry `json:"geometry"`
	Name             string   `json:"name"`
	Photos           []PhotoResult `json:"photos,omitempty"`
	PlaceID          string   `json:"place_id"`
	Rating           float64  `json:"rating,omitempty"`
	Types            []string `json:"types"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	Vicinity         string   `json:"vicinity,omitempty"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PhotoResult struct {
	Height           int      `json:"height"`
	HTMLAttributions []string `json:"html_attributions"`
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width"`
}

// Response statuses documented for the Places API
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusUnknownError   = "UNKNOWN_ERROR"
)
