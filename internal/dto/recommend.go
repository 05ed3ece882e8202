package dto

import "github.com/homeoremedies/remedy-finder/api/internal/entity"

// RecommendRequest is the symptom questionnaire submitted by the client.
// Only Symptoms is mandatory; the rest refine the consultation.
type RecommendRequest struct {
	Symptoms           string `json:"symptoms"`
	Severity           string `json:"severity,omitempty"`
	ExistingConditions string `json:"existingConditions,omitempty"`
	AdditionalInfo     string `json:"additionalInfo,omitempty"`
	Location           string `json:"location,omitempty"`
	Age                string `json:"age,omitempty"`
	Gender             string `json:"gender,omitempty"`
}

// RecommendResponse is the merged payload returned to the client.
// LocalStores is omitted entirely (not an empty array) when no location
// was supplied or nothing usable came back from the places provider;
// consumers rely on the key's absence to tell the two cases apart.
type RecommendResponse struct {
	Recommendations []entity.RemedyRecommendation `json:"recommendations"`
	LocalStores     []entity.StoreCandidate       `json:"localStores,omitempty"`
}
