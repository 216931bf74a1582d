package types

// Reason explains why no place is on display
type Reason string

const (
	ReasonNone                Reason = "none"
	ReasonNoLocation          Reason = "no_location"
	ReasonLocationUnavailable Reason = "location_unavailable"
	ReasonPermissionDenied    Reason = "permission_denied"
	ReasonNetworkError        Reason = "network_error"
	ReasonEmptyResult         Reason = "empty_result"
)

// DisplayState is what the view renders: either a place or the reason there is none.
// RequestID identifies the trigger that produced it; zero means nothing was requested yet.
type DisplayState struct {
	RequestID      uint64  `json:"requestId"`
	Place          *Place  `json:"place,omitempty"`
	Reason         Reason  `json:"reason"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
}

// Empty reports whether no place is on display
func (d DisplayState) Empty() bool {
	return d.Place == nil
}

// NewDisplayedPlace returns a state showing place
func NewDisplayedPlace(requestID uint64, place Place, distanceMeters float64) DisplayState {
	return DisplayState{
		RequestID:      requestID,
		Place:          &place,
		Reason:         ReasonNone,
		DistanceMeters: distanceMeters,
	}
}

// NewAbsentPlace returns a cleared state with the given reason
func NewAbsentPlace(requestID uint64, reason Reason) DisplayState {
	return DisplayState{
		RequestID: requestID,
		Reason:    reason,
	}
}
