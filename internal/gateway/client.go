package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/domain"
)

// FailureKind distinguishes rejections the user can act on from everything
// else.
type FailureKind string

const (
	// FailureValidation means the submission interface rejected the payload
	// with field-level messages.
	FailureValidation FailureKind = "validation"
	// FailureTransport covers network errors and unexpected responses.
	FailureTransport FailureKind = "transport"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SubmissionError is returned for any failed submission attempt. Message is
// the first field message for validation failures and a generic message
// otherwise. Submissions are never retried automatically.
type SubmissionError struct {
	Kind    FailureKind
	Message string
	Fields  []FieldError
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed (%s): %s", e.Kind, e.Message)
}

// Client submits order payloads to the upstream order service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type submissionResponse struct {
	Order  *domain.Order `json:"order"`
	Errors []FieldError  `json:"errors"`
}

// PlaceOrder sends the payload and returns the created order record. On
// failure the returned error is always a *SubmissionError.
func (c *Client) PlaceOrder(ctx context.Context, payload domain.OrderPayload) (*domain.Order, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SubmissionError{Kind: FailureTransport, Message: "could not encode order"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, &SubmissionError{Kind: FailureTransport, Message: "could not build request"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("order submission request failed", "error", err)
		return nil, &SubmissionError{Kind: FailureTransport, Message: "order service unreachable"}
	}
	defer resp.Body.Close()

	var decoded submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Errorw("order submission response unreadable", "status", resp.StatusCode, "error", err)
		return nil, &SubmissionError{Kind: FailureTransport, Message: "unexpected order service response"}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300 && decoded.Order != nil:
		return decoded.Order, nil
	case resp.StatusCode == http.StatusUnprocessableEntity && len(decoded.Errors) > 0:
		return nil, &SubmissionError{
			Kind:    FailureValidation,
			Message: decoded.Errors[0].Message,
			Fields:  decoded.Errors,
		}
	default:
		c.logger.Errorw("order submission rejected", "status", resp.StatusCode)
		return nil, &SubmissionError{Kind: FailureTransport, Message: "order could not be placed"}
	}
}
