package store

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// EdgeFunction invokes the remote generation job. The response body is an
// opaque signal: any 2xx means the job ran, everything else is a failure.
type EdgeFunction struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	fn         string
}

func NewEdgeFunction(baseURL, apiKey, fn string) *EdgeFunction {
	return &EdgeFunction{
		// Generation is slow: the job composes and uploads a new artifact
		// before responding.
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		fn:         fn,
	}
}

func (e *EdgeFunction) Invoke(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/functions/v1/%s", e.baseURL, e.fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("{}"))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", e.apiKey)
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("function %s status: %d", e.fn, resp.StatusCode)
	}
	return nil
}
