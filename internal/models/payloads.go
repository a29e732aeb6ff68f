package models

import "time"

// Diagnosis is a crop-disease diagnosis captured in the field.
type Diagnosis struct {
	Crop       string    `json:"crop"`
	Disease    string    `json:"disease"`
	Severity   string    `json:"severity"`             // "low", "medium", "high"
	Notes      string    `json:"notes,omitempty"`
	Confidence float64   `json:"confidence"`           // 0..1 from the vision model
	ObservedAt time.Time `json:"observed_at"`
	Latitude   float64   `json:"latitude,omitempty"`
	Longitude  float64   `json:"longitude,omitempty"`
}

// PriceSnapshot is a mandi commodity price observed by the user.
type PriceSnapshot struct {
	Commodity  string    `json:"commodity"`
	Market     string    `json:"market"`
	Unit       string    `json:"unit"`   // e.g. "quintal"
	PriceINR   float64   `json:"price_inr"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ParcelLookup is a land-parcel ownership lookup request queued while
// the revenue-records service is unreachable.
type ParcelLookup struct {
	State       string `json:"state"`
	District    string `json:"district"`
	Village     string `json:"village"`
	SurveyNo    string `json:"survey_no"`
	RequestedBy string `json:"requested_by"`
}
