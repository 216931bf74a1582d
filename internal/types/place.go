package types

// PhotoReference is an opaque token used to build an image URL
type PhotoReference string

// Place is an eating establishment returned by a nearby search.
// Values are built once from a provider response and never mutated.
type Place struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Location Coords           `json:"location"`
	Photos   []PhotoReference `json:"photos"`
	Vicinity string           `json:"vicinity,omitempty"`
	Rating   float64          `json:"rating,omitempty"`
}

// FirstPhoto returns the first photo reference, if the place has any
func (p Place) FirstPhoto() (PhotoReference, bool) {
	if len(p.Photos) == 0 {
		return "", false
	}
	return p.Photos[0], true
}

// SearchConfig holds the parameters of a single nearby search
type SearchConfig struct {
	RadiusMeters int
	PlaceType    string
}
