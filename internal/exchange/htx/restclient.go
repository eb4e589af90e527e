package htx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RESTClient talks to the HTX public REST API.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetKlines fetches the most recent size kline buckets for a symbol in
// wire form (lower-cased, no separator, e.g. "btcusdt"). Bucket order in
// the response is not guaranteed.
func (c *RESTClient) GetKlines(ctx context.Context, symbol, period string, size int) ([]Tick, error) {
	endpoint := fmt.Sprintf("%s/market/history/kline?symbol=%s&period=%s&size=%d",
		c.baseURL, symbol, period, size)

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("htx error: %s", body)
	}

	var rawResp klineResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if rawResp.Status != "ok" {
		return nil, fmt.Errorf("htx status %q: %s", rawResp.Status, rawResp.ErrMsg)
	}
	if len(rawResp.Data) == 0 {
		return nil, fmt.Errorf("empty kline payload for %s", symbol)
	}

	return rawResp.Data, nil
}
