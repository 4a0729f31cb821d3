// Package assignment provides the HTTP adapter to the external Delivery
// Assignment service. The service picks a shipper for a committed order on
// its own schedule; this adapter only notifies it and relays its verdict.
package assignment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// ErrBaseURLIsRequired is returned when the client is constructed without a
// service URL.
var ErrBaseURLIsRequired = errors.New("assignment service base url is required")

const defaultTimeout = 5 * time.Second

// Client calls the Delivery Assignment service over HTTP.
//
// The call is always post-commit and best effort: callers record the outcome
// on the order's note and move on. A transport error or a non-2xx response is
// returned as an error and treated by callers the same way as a reported
// failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an assignment service client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLIsRequired
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type notifyRequest struct {
	OrderID string `json:"orderId"`
}

type notifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NotifyOrderCreated informs the assignment service that the order awaits a
// shipper and returns the service's verdict.
func (c *Client) NotifyOrderCreated(ctx context.Context, orderID kernel.UUID) (ports.AssignmentResult, error) {
	if err := orderID.Validate(); err != nil {
		return ports.AssignmentResult{}, err
	}

	body, err := json.Marshal(notifyRequest{OrderID: orderID.String()})
	if err != nil {
		return ports.AssignmentResult{}, err
	}

	url := c.baseURL + "/api/v1/assignments"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ports.AssignmentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.AssignmentResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.AssignmentResult{}, fmt.Errorf("assignment service returned status %d", resp.StatusCode)
	}

	var decoded notifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.AssignmentResult{}, err
	}

	return ports.AssignmentResult{
		Success: decoded.Success,
		Message: decoded.Message,
	}, nil
}
