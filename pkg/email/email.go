package email

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"

	"github.com/goccy/go-json"
)

const sendPath = "/api/v1.0/email/send"

// RelayClient sends contact messages through the EmailJS REST API
type RelayClient struct {
	endpoint   string
	httpClient *http.Client
}

// sendRequest is the EmailJS REST payload
type sendRequest struct {
	ServiceID      string                `json:"service_id"`
	TemplateID     string                `json:"template_id"`
	UserID         string                `json:"user_id"`
	AccessToken    string                `json:"accessToken,omitempty"`
	TemplateParams domain.TemplateParams `json:"template_params"`
}

// DeliveryError reports a relay call that did not succeed.
// StatusCode is zero when the request never got a response.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("email relay request failed: %v", e.Err)
	}
	return fmt.Sprintf("email relay rejected message: status %d: %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewRelayClient creates a client for the configured EmailJS endpoint
func NewRelayClient(cfg *config.Config) *RelayClient {
	return NewRelayClientWithHTTP(cfg.EmailJSAPIURL, &http.Client{Timeout: cfg.EmailJSTimeout})
}

func NewRelayClientWithHTTP(endpoint string, httpClient *http.Client) *RelayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &RelayClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: httpClient,
	}
}

// Send issues exactly one request to the relay. Any non-200 reply is a DeliveryError.
func (c *RelayClient) Send(ctx context.Context, params domain.MailParams) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      params.ServiceID,
		TemplateID:     params.TemplateID,
		UserID:         params.PublicKey,
		AccessToken:    params.PrivateKey,
		TemplateParams: params.Fields,
	})
	if err != nil {
		return fmt.Errorf("failed to encode relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+sendPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	// EmailJS answers with a short plain-text body either way
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return nil
}
