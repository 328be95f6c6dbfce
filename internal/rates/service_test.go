package rates

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type sourceFunc func(ctx context.Context) ([]map[string]any, error)

func (f sourceFunc) FetchRecords(ctx context.Context) ([]map[string]any, error) {
	return f(ctx)
}

// countingGenerator wraps a canned response and records call count.
type countingGenerator struct {
	calls    int
	response string
	err      error
}

func (g *countingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

const geminiRatesResponse = "```json\n" + `[
  {"id":"k1","crop":"Paddy","variety":"Common","category":"kharif","year":"2024-25","rate":2300,"increase":117,"increasePercentage":5.4},
  {"id":"r1","crop":"Wheat","category":"rabi","year":"2024-25","rate":2425}
]` + "\n```"

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatesWithoutSourcesServesReference(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	svc := NewService(nil, nil, cache, noopLogger())

	records := svc.Rates(context.Background())
	reference := ReferenceRates()
	if len(records) != len(reference) {
		t.Fatalf("expected the reference table, got %d records", len(records))
	}
	if records[0].ID != reference[0].ID || records[0].Source != "" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}

	if _, ok := cache.Read(); ok {
		t.Fatal("fallback results must never be cached")
	}
}

func TestRatesFromGenerator(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := &countingGenerator{response: geminiRatesResponse}
	svc := NewService(nil, gen, cache, noopLogger())

	records := svc.Rates(context.Background())
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	for _, record := range records {
		if record.Source != SourceGemini {
			t.Fatalf("expected generative provenance, got %q", record.Source)
		}
		if record.LastUpdated == "" {
			t.Fatal("LastUpdated should be stamped on live results")
		}
	}

	if _, ok := cache.Read(); !ok {
		t.Fatal("successful fetch should write through the cache")
	}

	svc.Rates(context.Background())
	if gen.calls != 1 {
		t.Fatalf("cached call should not reach the provider, calls=%d", gen.calls)
	}
}

func TestRatesCacheHitSkipsProvider(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := &countingGenerator{response: geminiRatesResponse}
	svc := NewService(nil, gen, cache, noopLogger())

	cache.Write([]RateRecord{{ID: "x1", Crop: "Ragi", Category: CategoryKharif, Year: CurrentSeason, Rate: 4290}})

	records := svc.Rates(context.Background())
	if len(records) != 1 || records[0].ID != "x1" {
		t.Fatalf("expected cached records, got %+v", records)
	}
	if gen.calls != 0 {
		t.Fatalf("fresh cache must suppress provider calls, calls=%d", gen.calls)
	}
}

func TestRatesCacheExpiryRetriesProvider(t *testing.T) {
	cache, clock := newTestCache(time.Hour)
	gen := &countingGenerator{response: geminiRatesResponse}
	svc := NewService(nil, gen, cache, noopLogger())

	cache.Write([]RateRecord{{ID: "x1"}})
	clock.Advance(time.Hour)

	records := svc.Rates(context.Background())
	if gen.calls != 1 {
		t.Fatalf("stale cache should retry the provider, calls=%d", gen.calls)
	}
	if records[0].ID != "k1" {
		t.Fatalf("expected fresh provider records, got %+v", records[0])
	}
}

func TestRatesGeneratorErrorFallsBack(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := &countingGenerator{err: errors.New("quota exhausted")}
	svc := NewService(nil, gen, cache, noopLogger())

	records := svc.Rates(context.Background())
	if len(records) != len(ReferenceRates()) || records[0].Source != "" {
		t.Fatalf("provider failure should serve the reference table, got %+v", records[0])
	}
}

func TestRatesGeneratorBadPayloadFallsBack(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := &countingGenerator{response: "I'm sorry, I can't provide that data."}
	svc := NewService(nil, gen, cache, noopLogger())

	records := svc.Rates(context.Background())
	if records[0].Source != "" {
		t.Fatalf("uncoercible payload should serve the reference table, got %+v", records[0])
	}
	if _, ok := cache.Read(); ok {
		t.Fatal("fallback after coercion failure must not be cached")
	}
}

func TestRatesPrefersGovernmentSource(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := &countingGenerator{response: geminiRatesResponse}
	source := sourceFunc(func(ctx context.Context) ([]map[string]any, error) {
		return []map[string]any{{"commodity_name": "Wheat", "msp_price": "2275"}}, nil
	})
	svc := NewService(source, gen, cache, noopLogger())

	records := svc.Rates(context.Background())
	if len(records) != 1 || records[0].Source != SourceLiveAPI {
		t.Fatalf("government tier should win when available, got %+v", records)
	}
	if gen.calls != 0 {
		t.Fatalf("generator should not be consulted when the source succeeds, calls=%d", gen.calls)
	}
	if _, ok := cache.Read(); !ok {
		t.Fatal("government results should be cached")
	}
}

func TestRatesSourceErrorFallsToGenerator(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := &countingGenerator{response: geminiRatesResponse}
	source := sourceFunc(func(ctx context.Context) ([]map[string]any, error) {
		return nil, errors.New("service unavailable")
	})
	svc := NewService(source, gen, cache, noopLogger())

	records := svc.Rates(context.Background())
	if gen.calls != 1 {
		t.Fatalf("generator should be tried after source failure, calls=%d", gen.calls)
	}
	if records[0].Source != SourceGemini {
		t.Fatalf("expected generative provenance, got %q", records[0].Source)
	}
}

func TestRatesByCategoryFallback(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	svc := NewService(nil, nil, cache, noopLogger())

	rabi := svc.RatesByCategory(context.Background(), CategoryRabi)
	if len(rabi) != 2 {
		t.Fatalf("expected two rabi entries, got %d", len(rabi))
	}
	if rabi[0].Crop != "Wheat" || rabi[1].Crop != "Barley" {
		t.Fatalf("expected Wheat then Barley, got %q and %q", rabi[0].Crop, rabi[1].Crop)
	}
}

func TestHistoryUnknownID(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	svc := NewService(nil, nil, cache, noopLogger())

	points := svc.History(context.Background(), "unknown-id")
	if len(points) != 0 {
		t.Fatalf("unknown crop id should yield an empty history, got %+v", points)
	}
}

func TestHistoryExtrapolation(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	svc := NewService(nil, nil, cache, noopLogger())

	points := svc.History(context.Background(), "k1")
	if len(points) != 5 {
		t.Fatalf("expected five points, got %d", len(points))
	}

	wantYears := []string{"2024-25", "2023-24", "2022-23", "2021-22", "2020-21"}
	wantRates := []float64{2183, 2040, 1925.6, 1825.5, 1725.4}
	for i, point := range points {
		if point.Year != wantYears[i] {
			t.Fatalf("point %d: expected year %s, got %s", i, wantYears[i], point.Year)
		}
		if !almostEqual(point.Rate, wantRates[i]) {
			t.Fatalf("point %d: expected rate %v, got %v", i, wantRates[i], point.Rate)
		}
	}
}

func TestHistoryDecodeFailureExtrapolates(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "no structured data available", nil
	})
	svc := NewService(nil, gen, cache, noopLogger())
	cache.Write(ReferenceRates())

	points := svc.History(context.Background(), "k1")
	if len(points) != 5 {
		t.Fatalf("expected extrapolated history, got %+v", points)
	}
	if !almostEqual(points[1].Rate, 2040) {
		t.Fatalf("expected extrapolated second point 2040, got %v", points[1].Rate)
	}
}

func TestHistorySortsProviderPoints(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "```json\n" + `[
  {"year":"2022-23","rate":2040},
  {"year":"2024-25","rate":2300},
  {"year":"2023-24","rate":2183}
]` + "\n```", nil
	})
	svc := NewService(nil, gen, cache, noopLogger())
	cache.Write(ReferenceRates())

	points := svc.History(context.Background(), "k1")
	if len(points) != 3 {
		t.Fatalf("expected three points, got %d", len(points))
	}
	if points[0].Year != "2024-25" || points[1].Year != "2023-24" || points[2].Year != "2022-23" {
		t.Fatalf("points should be sorted by descending season: %+v", points)
	}
}

func TestHistoryPromptAnchorsCurrentRate(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	var captured string
	gen := generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		captured = prompt
		return "", errors.New("not now")
	})
	svc := NewService(nil, gen, cache, noopLogger())
	cache.Write(ReferenceRates())

	svc.History(context.Background(), "k1")
	if !strings.Contains(captured, "2183") {
		t.Fatalf("history prompt should anchor on the current rate, got: %s", captured)
	}
	if !strings.Contains(captured, "Paddy") {
		t.Fatalf("history prompt should name the crop, got: %s", captured)
	}
}

func TestHistoryFivePercentDelta(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	svc := NewService(nil, nil, cache, noopLogger())
	cache.Write([]RateRecord{{ID: "o9", Crop: "Tea", Category: CategoryOther, Year: CurrentSeason, Rate: 1000}})

	points := svc.History(context.Background(), "o9")
	wantRates := []float64{1000, 950, 910, 875, 840}
	for i, point := range points {
		if !almostEqual(point.Rate, wantRates[i]) {
			t.Fatalf("point %d: expected rate %v, got %v", i, wantRates[i], point.Rate)
		}
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	gen := &countingGenerator{response: geminiRatesResponse}
	svc := NewService(nil, gen, cache, noopLogger())

	svc.Rates(context.Background())
	svc.ClearCache()
	svc.Rates(context.Background())

	if gen.calls != 2 {
		t.Fatalf("clearing the cache should force a fresh provider call, calls=%d", gen.calls)
	}
}

func TestClearCacheWithoutSources(t *testing.T) {
	cache, _ := newTestCache(time.Hour)
	svc := NewService(nil, nil, cache, noopLogger())

	svc.ClearCache()
	records := svc.Rates(context.Background())
	if len(records) != len(ReferenceRates()) {
		t.Fatalf("expected the reference table after clear, got %d records", len(records))
	}
}
