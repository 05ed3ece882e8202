package entity

// StoreCandidate represents one nearby store hit after enrichment.
// DistanceKm is present only when both the user and the store could be
// geolocated.
type StoreCandidate struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Rating      *float64 `json:"rating,omitempty"`
	OpenNow     *bool    `json:"openNow,omitempty"`
	PhoneNumber *string  `json:"phoneNumber,omitempty"`
	Website     *string  `json:"website,omitempty"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}
