// Package emailjs sends template emails through the EmailJS REST API.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public EmailJS API origin.
	DefaultBaseURL = "https://api.emailjs.com"
	sendPath       = "/api/v1.0/email/send"
	maxErrorBody   = 1 << 10
)

// ErrThrottled is returned when a send would exceed the configured rate.
// The send is dropped, not queued.
var ErrThrottled = errors.New("emailjs: send rate exceeded")

// Config holds the credentials and transport settings for a Client.
type Config struct {
	BaseURL    string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
	// Rate and Burst bound outbound sends per second; Rate <= 0 disables it.
	// Sends over the limit fail with ErrThrottled.
	Rate  float64
	Burst int
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client wraps interactions with the EmailJS API.
type Client struct {
	baseURL    string
	publicKey  string
	privateKey string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Error is returned when EmailJS answers with a non-2xx status.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("emailjs: status %d", e.Status)
	}
	return fmt.Sprintf("emailjs: status %d: %s", e.Status, e.Body)
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewClient constructs a new client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	var limiter *rate.Limiter
	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}
	return &Client{
		baseURL:    baseURL,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// Send renders templateID of serviceID with params and delivers it. It
// makes exactly one request; callers decide what a failure means.
func (c *Client) Send(ctx context.Context, serviceID, templateID string, params map[string]string) error {
	if c.publicKey == "" || serviceID == "" || templateID == "" {
		return fmt.Errorf("emailjs: public key, service id and template id are required")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	if c.limiter != nil && !c.limiter.Allow() {
		return ErrThrottled
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
