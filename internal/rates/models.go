package rates

// Category labels the sowing season a crop belongs to.
type Category string

const (
	CategoryKharif Category = "kharif"
	CategoryRabi   Category = "rabi"
	CategoryOther  Category = "other"
)

// Provenance values stamped on records that originate from a live fetch.
// Static reference entries carry no provenance.
const (
	SourceLiveAPI = "API data"
	SourceGemini  = "Gemini AI generated"
)

// CurrentSeason is the marketing season rates are requested for.
const CurrentSeason = "2024-25"

// RateRecord is the canonical MSP entry. Rate is rupees per quintal.
// Increase and IncreasePercentage are deltas versus the prior season and are
// nil when no prior value is known.
type RateRecord struct {
	ID                 string   `json:"id"`
	Crop               string   `json:"crop"`
	Variety            string   `json:"variety,omitempty"`
	Category           Category `json:"category"`
	Year               string   `json:"year"`
	Rate               float64  `json:"rate"`
	Increase           *float64 `json:"increase,omitempty"`
	IncreasePercentage *float64 `json:"increasePercentage,omitempty"`
	Source             string   `json:"source,omitempty"`
	LastUpdated        string   `json:"lastUpdated,omitempty"`
}

// HistoryPoint is one season's rate for a single crop.
type HistoryPoint struct {
	Year string  `json:"year"`
	Rate float64 `json:"rate"`
}
