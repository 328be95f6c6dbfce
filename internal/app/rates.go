package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"mspwatch/internal/rates"
)

// Rates prints the current MSP table, optionally filtered by category.
func (a *App) Rates(ctx context.Context, opts RatesOptions) error {
	svc := a.service(ctx)

	var records []rates.RateRecord
	if opts.Category != "" {
		category, err := parseCategory(opts.Category)
		if err != nil {
			return err
		}
		records = svc.RatesByCategory(ctx, category)
	} else {
		records = svc.Rates(ctx)
	}

	if opts.JSON {
		return writeJSON(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "no rates found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tCrop\tVariety\tCategory\tYear\tRate (Rs/quintal)\tIncrease\tIncrease%\tSource")
	for _, record := range records {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			record.ID,
			record.Crop,
			record.Variety,
			record.Category,
			record.Year,
			record.Rate,
			formatOptional(record.Increase, "%.0f"),
			formatOptional(record.IncreasePercentage, "%.1f"),
			sourceLabel(record.Source),
		)
	}
	return writer.Flush()
}

// Refresh clears the cache and forces a fresh acquisition.
func (a *App) Refresh(ctx context.Context) error {
	svc := a.service(ctx)
	svc.ClearCache()

	records := svc.Rates(ctx)
	source := "reference table"
	if len(records) > 0 && records[0].Source != "" {
		source = records[0].Source
	}
	a.Logger.Info().Int("records", len(records)).Str("source", source).Msg("rates refreshed")
	return nil
}

func parseCategory(value string) (rates.Category, error) {
	switch rates.Category(value) {
	case rates.CategoryKharif, rates.CategoryRabi, rates.CategoryOther:
		return rates.Category(value), nil
	}
	return "", fmt.Errorf("unknown category %q (expected kharif, rabi or other)", value)
}

func formatOptional(value *float64, format string) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf(format, *value)
}

func sourceLabel(source string) string {
	if source == "" {
		return "built-in"
	}
	return source
}

func writeJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
