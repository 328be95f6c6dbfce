package fetcher

import "context"

// RecordSource retrieves loosely-typed MSP records from a live data source.
type RecordSource interface {
	FetchRecords(ctx context.Context) ([]map[string]any, error)
}

// TextGenerator produces a free-text completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
