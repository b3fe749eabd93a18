package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultFetchTimeout = 30 * time.Second

// SourceURLs holds the published-CSV URL for each of the four input sources.
type SourceURLs struct {
	Sales        string
	FCStock      string
	CentralStock string
	Remarks      string
}

// SheetClient fetches published spreadsheet tabs as CSV.
type SheetClient struct {
	hc *http.Client
}

// NewSheetClient creates a sheet client with the given request timeout.
func NewSheetClient(timeout time.Duration) *SheetClient {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &SheetClient{hc: &http.Client{Timeout: timeout}}
}

// FetchCSV retrieves one named source and parses it into raw records,
// header row first. A non-success status or a non-tabular body (an HTML
// error page instead of data) fails loudly with the source name attached.
func (c *SheetClient) FetchCSV(ctx context.Context, source, url string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("source %s: build request: %w", source, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source %s: fetch: %w", source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source %s: read response: %w", source, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Source: source, StatusCode: resp.StatusCode, Reason: "non-success status"}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &TransportError{Source: source, Reason: "empty response body"}
	}
	if trimmed[0] == '<' {
		// An error page returned where tabular text was expected.
		return nil, &TransportError{Source: source, Reason: "non-tabular response (HTML detected)"}
	}

	reader := csv.NewReader(bytes.NewReader(trimmed))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("source %s: parse csv: %w", source, err)
	}
	return records, nil
}
