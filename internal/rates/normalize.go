package rates

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Government records are loosely typed and inconsistently named across
// resources. Each canonical field is resolved from an ordered candidate list;
// the first non-empty value wins.
var (
	idFields       = []string{"id"}
	cropFields     = []string{"commodity_name", "crop_name", "crop", "commodity"}
	varietyFields  = []string{"variety", "grade"}
	yearFields     = []string{"year", "marketing_season", "season"}
	rateFields     = []string{"msp_price", "rate", "price", "msp"}
	previousFields = []string{"previous_price", "previous_rate", "previous_msp", "last_year_price"}
)

var (
	kharifKeywords = []string{"paddy", "rice", "jowar", "bajra", "maize", "ragi", "arhar", "tur", "moong", "urad", "groundnut", "sunflower", "soyabean", "soybean", "sesamum", "niger", "cotton"}
	rabiKeywords   = []string{"wheat", "barley", "gram", "masur", "lentil", "mustard", "rapeseed", "safflower", "toria"}
)

// Normalize converts raw government records into canonical rate records,
// stamping live-API provenance. Output order matches input order; no
// deduplication or sorting is applied.
func Normalize(raw []map[string]any, fetchedAt time.Time) []RateRecord {
	records := make([]RateRecord, 0, len(raw))
	updated := fetchedAt.UTC().Format(time.RFC3339)

	for i, rec := range raw {
		crop := stringField(rec, cropFields...)
		category := classifyCategory(crop)

		record := RateRecord{
			Crop:        crop,
			Variety:     stringField(rec, varietyFields...),
			Category:    category,
			Year:        stringField(rec, yearFields...),
			Source:      SourceLiveAPI,
			LastUpdated: updated,
		}
		if record.Year == "" {
			record.Year = CurrentSeason
		}

		if rate, ok := numberField(rec, rateFields...); ok {
			record.Rate = rate
		}
		if previous, ok := numberField(rec, previousFields...); ok && previous > 0 {
			rate := decimal.NewFromFloat(record.Rate)
			prev := decimal.NewFromFloat(previous)
			increase := rate.Sub(prev)
			pct := increase.Div(prev).Mul(decimal.NewFromInt(100)).Round(1)
			record.Increase = fp(increase.InexactFloat64())
			record.IncreasePercentage = fp(pct.InexactFloat64())
		}

		record.ID = stringField(rec, idFields...)
		if record.ID == "" {
			record.ID = fmt.Sprintf("%c%d", category[0], i+1)
		}

		records = append(records, record)
	}

	return records
}

func classifyCategory(crop string) Category {
	name := strings.ToLower(crop)
	for _, keyword := range kharifKeywords {
		if strings.Contains(name, keyword) {
			return CategoryKharif
		}
	}
	for _, keyword := range rabiKeywords {
		if strings.Contains(name, keyword) {
			return CategoryRabi
		}
	}
	return CategoryOther
}

func stringField(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := rec[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func numberField(rec map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch value := rec[key].(type) {
		case float64:
			return value, true
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}
