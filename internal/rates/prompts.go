package rates

import "fmt"

func currentRatesPrompt() string {
	return fmt.Sprintf(`List the Minimum Support Prices (MSP) announced by the Government of India for the %s marketing season.
Respond with only a JSON array, one object per crop, using exactly these fields:
id (string), crop (string), variety (string, optional), category ("kharif", "rabi" or "other"), year (string "%s"), rate (number, rupees per quintal), increase (number, optional), increasePercentage (number, optional).
Do not include any text outside the JSON array.`, CurrentSeason, CurrentSeason)
}

func historyPrompt(record RateRecord) string {
	crop := record.Crop
	if record.Variety != "" {
		crop = fmt.Sprintf("%s (%s)", record.Crop, record.Variety)
	}
	return fmt.Sprintf(`The current Minimum Support Price of %s in India for %s is %.0f rupees per quintal.
List its MSP for the last 5 marketing seasons including the current one.
Respond with only a JSON array of objects with exactly these fields: year (string "YYYY-YY"), rate (number, rupees per quintal).
Do not include any text outside the JSON array.`, crop, record.Year, record.Rate)
}
