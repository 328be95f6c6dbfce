package rates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"mspwatch/internal/fetcher"
)

// ErrNoLiveSource signals that neither a government source nor a generative
// provider is configured, so a miss goes straight to the reference table.
var ErrNoLiveSource = errors.New("no live source configured")

// Season labels and deltas for the deterministic history fallback. The
// multipliers are an intentional heuristic carried over unchanged from the
// original pricing table behaviour.
var (
	historySeasons     = []string{"2024-25", "2023-24", "2022-23", "2021-22", "2020-21"}
	historyMultipliers = []float64{0, 1, 1.8, 2.5, 3.2}
)

// Service is the tiered acquisition pipeline: cache, then the live government
// source, then the generative provider, then the static reference table. All
// public operations have a total contract; no failure reaches the caller.
type Service struct {
	source fetcher.RecordSource
	gen    fetcher.TextGenerator
	cache  *Cache
	logger zerolog.Logger
	now    func() time.Time
}

// NewService constructs the pipeline. Either source may be nil, meaning that
// tier is skipped.
func NewService(source fetcher.RecordSource, gen fetcher.TextGenerator, cache *Cache, logger zerolog.Logger) *Service {
	if cache == nil {
		cache = NewCache(DefaultFreshness)
	}
	return &Service{
		source: source,
		gen:    gen,
		cache:  cache,
		logger: logger.With().Str("component", "rates_service").Logger(),
		now:    time.Now,
	}
}

// Rates returns the current MSP table. Live results are cached for the
// freshness window; the reference table is never cached, so the next call
// retries the live path.
func (s *Service) Rates(ctx context.Context) []RateRecord {
	if records, ok := s.cache.Read(); ok {
		return records
	}

	records, err := s.fetchLive(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("live fetch unavailable; serving reference table")
		return ReferenceRates()
	}

	s.cache.Write(records)
	return records
}

// RatesByCategory filters Rates by exact category match, order preserved.
func (s *Service) RatesByCategory(ctx context.Context, category Category) []RateRecord {
	all := s.Rates(ctx)
	filtered := make([]RateRecord, 0, len(all))
	for _, record := range all {
		if record.Category == category {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// History returns up to five seasons of MSP for the crop with the given id.
// Unknown ids yield an empty sequence. When the generative provider cannot
// supply a usable history, a deterministic extrapolation from the current
// rate is returned instead.
func (s *Service) History(ctx context.Context, cropID string) []HistoryPoint {
	var record *RateRecord
	for _, candidate := range s.Rates(ctx) {
		if candidate.ID == cropID {
			record = &candidate
			break
		}
	}
	if record == nil {
		return []HistoryPoint{}
	}

	if s.gen != nil {
		text, err := s.gen.Generate(ctx, historyPrompt(*record))
		if err == nil {
			points, decodeErr := DecodeArray[HistoryPoint](text)
			if decodeErr == nil {
				sortHistoryDescending(points)
				return points
			}
			err = decodeErr
		}
		s.logger.Warn().Err(err).Str("crop_id", cropID).Msg("history fetch failed; extrapolating")
	}

	return extrapolateHistory(*record)
}

// ClearCache forces the next Rates call to miss.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// fetchLive tries each configured live tier once, in order of authority.
func (s *Service) fetchLive(ctx context.Context) ([]RateRecord, error) {
	if s.source == nil && s.gen == nil {
		return nil, ErrNoLiveSource
	}

	var sourceErr, genErr error

	if s.source != nil {
		raw, err := s.source.FetchRecords(ctx)
		if err == nil && len(raw) > 0 {
			return Normalize(raw, s.now()), nil
		}
		if err == nil {
			err = errors.New("source returned no records")
		}
		sourceErr = fmt.Errorf("government source: %w", err)
		s.logger.Debug().Err(err).Msg("government tier failed")
	}

	if s.gen != nil {
		text, err := s.gen.Generate(ctx, currentRatesPrompt())
		if err == nil {
			records, decodeErr := DecodeArray[RateRecord](text)
			if decodeErr == nil {
				updated := s.now().UTC().Format(time.RFC3339)
				for i := range records {
					records[i].Source = SourceGemini
					records[i].LastUpdated = updated
				}
				return records, nil
			}
			err = decodeErr
		}
		genErr = fmt.Errorf("generative provider: %w", err)
		s.logger.Debug().Err(err).Msg("generative tier failed")
	}

	return nil, errors.Join(sourceErr, genErr)
}

func extrapolateHistory(record RateRecord) []HistoryPoint {
	rate := decimal.NewFromFloat(record.Rate)

	var delta decimal.Decimal
	if record.Increase != nil {
		delta = decimal.NewFromFloat(*record.Increase)
	} else {
		delta = rate.Mul(decimal.NewFromFloat(0.05))
	}

	points := make([]HistoryPoint, 0, len(historySeasons))
	for i, season := range historySeasons {
		value := rate.Sub(delta.Mul(decimal.NewFromFloat(historyMultipliers[i]))).Round(1)
		points = append(points, HistoryPoint{Year: season, Rate: value.InexactFloat64()})
	}
	return points
}

func sortHistoryDescending(points []HistoryPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return seasonStartYear(points[i].Year) > seasonStartYear(points[j].Year)
	})
}

// seasonStartYear parses the leading year of a "YYYY-YY" season label.
func seasonStartYear(season string) int {
	prefix, _, _ := strings.Cut(season, "-")
	year, err := strconv.Atoi(strings.TrimSpace(prefix))
	if err != nil {
		return 0
	}
	return year
}
