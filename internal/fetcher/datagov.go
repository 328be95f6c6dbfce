package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DataGovOptions parameterise the data.gov.in fetcher.
type DataGovOptions struct {
	BaseURL    string
	APIKey     string
	ResourceID string
	Limit      int
	Timeout    time.Duration
	UserAgent  string
}

// DataGov fetches MSP records from the Open Government Data platform.
type DataGov struct {
	opts    DataGovOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewDataGov constructs a government data fetcher.
func NewDataGov(opts DataGovOptions, logger zerolog.Logger) *DataGov {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.data.gov.in/resource"
	}

	return &DataGov{
		opts:    opts,
		logger:  logger.With().Str("component", "datagov_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchRecords retrieves the configured resource and returns its raw records.
func (d *DataGov) FetchRecords(ctx context.Context) ([]map[string]any, error) {
	if d.opts.APIKey == "" {
		return nil, errors.New("data.gov.in api key required")
	}
	if d.opts.ResourceID == "" {
		return nil, errors.New("data.gov.in resource id required")
	}

	limit := d.opts.Limit
	if limit <= 0 {
		limit = 100
	}

	query := url.Values{}
	query.Set("api-key", d.opts.APIKey)
	query.Set("format", "json")
	query.Set("limit", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/%s?%s", d.baseURL, d.opts.ResourceID, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(d.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "mspwatch/1.0")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp.StatusCode, payload)
	}

	var envelope recordsResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode records payload: %w", err)
	}

	if strings.EqualFold(envelope.Status, "error") {
		if envelope.Message != "" {
			return nil, fmt.Errorf("data.gov api error: %s", envelope.Message)
		}
		return nil, errors.New("data.gov api returned error status")
	}

	d.logger.Debug().Int("count", len(envelope.Records)).Msg("fetched government records")
	return envelope.Records, nil
}

type recordsResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Total   int              `json:"total"`
	Count   int              `json:"count"`
	Records []map[string]any `json:"records"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Message != "" {
			return fmt.Errorf("data.gov api error (%d): %s", status, apiErr.Message)
		}
		if apiErr.Error != "" {
			return fmt.Errorf("data.gov api error (%d): %s", status, apiErr.Error)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("data.gov api error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("data.gov api error (%d)", status)
}

var _ RecordSource = (*DataGov)(nil)
