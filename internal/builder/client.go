package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alimahmoud/usdt-orders/internal/order"
	"github.com/alimahmoud/usdt-orders/pkg/response"
)

const submitTimeout = 10 * time.Second

// Client submits order records to the notifier's HTTP endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a submission client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: submitTimeout,
		},
	}
}

// Submit posts the record and interprets the reply. Any transport error,
// non-OK status or {success:false} body is reported as a single failure; the
// caller decides whether to resubmit.
func (c *Client) Submit(ctx context.Context, rec *order.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	defer resp.Body.Close()

	var result response.Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("submission failed with status %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		if result.Error != "" {
			return fmt.Errorf("submission rejected: %s", result.Error)
		}
		return fmt.Errorf("submission failed with status %d", resp.StatusCode)
	}

	return nil
}
