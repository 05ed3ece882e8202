package entity

// RemedyRecommendation is a single remedy suggestion produced for one request.
// PurchaseURL is derived server-side; the model never supplies it.
type RemedyRecommendation struct {
	MedicineName   string   `json:"medicineName"`
	Potency        string   `json:"potency"`
	Dosage         string   `json:"dosage"`
	Description    string   `json:"description"`
	Benefits       []string `json:"benefits"`
	Considerations []string `json:"considerations"`
	PurchaseURL    string   `json:"purchaseUrl"`
}
