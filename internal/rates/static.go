package rates

// ReferenceRates returns the built-in MSP table used when every live tier
// fails. Entries carry no Source or LastUpdated so fallback results are
// distinguishable from live data. A fresh copy is returned on every call;
// callers may not observe each other's mutations.
func ReferenceRates() []RateRecord {
	return []RateRecord{
		{ID: "k1", Crop: "Paddy", Variety: "Common", Category: CategoryKharif, Year: CurrentSeason, Rate: 2183, Increase: fp(143), IncreasePercentage: fp(7.0)},
		{ID: "k2", Crop: "Paddy", Variety: "Grade A", Category: CategoryKharif, Year: CurrentSeason, Rate: 2203, Increase: fp(143), IncreasePercentage: fp(6.9)},
		{ID: "k3", Crop: "Jowar", Variety: "Hybrid", Category: CategoryKharif, Year: CurrentSeason, Rate: 3180, Increase: fp(210), IncreasePercentage: fp(7.1)},
		{ID: "k4", Crop: "Bajra", Category: CategoryKharif, Year: CurrentSeason, Rate: 2500, Increase: fp(150), IncreasePercentage: fp(6.4)},
		{ID: "k5", Crop: "Maize", Category: CategoryKharif, Year: CurrentSeason, Rate: 2090, Increase: fp(128), IncreasePercentage: fp(6.5)},
		{ID: "k6", Crop: "Cotton", Variety: "Medium Staple", Category: CategoryKharif, Year: CurrentSeason, Rate: 6620, Increase: fp(540), IncreasePercentage: fp(8.9)},
		{ID: "r1", Crop: "Wheat", Category: CategoryRabi, Year: CurrentSeason, Rate: 2275, Increase: fp(150), IncreasePercentage: fp(7.1)},
		{ID: "r2", Crop: "Barley", Category: CategoryRabi, Year: CurrentSeason, Rate: 1850, Increase: fp(115), IncreasePercentage: fp(6.6)},
		{ID: "o1", Crop: "Sugarcane", Category: CategoryOther, Year: CurrentSeason, Rate: 315, Increase: fp(10), IncreasePercentage: fp(3.3)},
		{ID: "o2", Crop: "Jute", Category: CategoryOther, Year: CurrentSeason, Rate: 5335, Increase: fp(285), IncreasePercentage: fp(5.6)},
	}
}

func fp(v float64) *float64 {
	return &v
}
