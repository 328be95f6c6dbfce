package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	chart "github.com/wcharczuk/go-chart/v2"

	"mspwatch/internal/rates"
)

// History prints the multi-season MSP history for one crop and optionally
// exports it as CSV and/or a PNG bar chart.
func (a *App) History(ctx context.Context, opts HistoryOptions) error {
	svc := a.service(ctx)

	points := svc.History(ctx, opts.CropID)
	if len(points) == 0 {
		fmt.Fprintf(os.Stdout, "no rates found for crop id %q\n", opts.CropID)
		return nil
	}

	if opts.CSVPath != "" {
		if err := writeHistoryCSV(opts.CSVPath, opts.CropID, points); err != nil {
			return err
		}
		a.Logger.Info().Str("path", opts.CSVPath).Msg("history exported to csv")
	}

	if opts.PNGPath != "" {
		if err := writeHistoryPNG(opts.PNGPath, opts.CropID, points); err != nil {
			return err
		}
		a.Logger.Info().Str("path", opts.PNGPath).Msg("history exported to png")
	}

	if opts.JSON {
		return writeJSON(points)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Year\tRate (Rs/quintal)")
	for _, point := range points {
		fmt.Fprintf(writer, "%s\t%.1f\n", point.Year, point.Rate)
	}
	return writer.Flush()
}

func writeHistoryCSV(path, cropID string, points []rates.HistoryPoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"crop_id", "year", "rate_rs_per_quintal"}); err != nil {
		return err
	}
	for _, point := range points {
		record := []string{cropID, point.Year, strconv.FormatFloat(point.Rate, 'f', 1, 64)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeHistoryPNG(path, cropID string, points []rates.HistoryPoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	// Points arrive newest first; the chart reads better oldest first.
	bars := make([]chart.Value, 0, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		bars = append(bars, chart.Value{Label: points[i].Year, Value: points[i].Rate})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("MSP history (%s)", cropID),
		Width:    1280,
		Height:   720,
		BarWidth: 120,
		YAxis: chart.YAxis{
			Name: "Rate (Rs/quintal)",
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
		Bars: bars,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
