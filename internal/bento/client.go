package bento

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const (
	defaultBaseURL   = "https://app.bentonow.com/api/v1"
	defaultUserAgent = "go-sitekit/1.0"
	defaultTimeout   = 10 * time.Second

	// eventTypeDirectDownload is the Bento event recorded for every gated
	// download that captured an email.
	eventTypeDirectDownload = "$direct_download"
)

// Config holds the three credentials the batch events endpoint requires.
type Config struct {
	SiteUUID       string
	PublishableKey string
	SecretKey      string
}

// Enabled reports whether all required credentials are present. When any is
// missing the caller is expected to skip tracking silently.
func (c Config) Enabled() bool {
	return c.SiteUUID != "" && c.PublishableKey != "" && c.SecretKey != ""
}

// Client submits subscriber events to the Bento batch events API.
type Client struct {
	config     Config
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     interfaces.Logger
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, used mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL points the client at an alternative endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithLogger injects the logger used for request outcomes.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Bento client. The credentials are not validated here;
// callers gate construction on Config.Enabled.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		config:     cfg,
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type batchEventsPayload struct {
	SiteUUID string  `json:"site_uuid"`
	Events   []event `json:"events"`
}

type event struct {
	Email   string            `json:"email"`
	Type    string            `json:"type"`
	Details map[string]string `json:"details,omitempty"`
}

// TrackDownload records a direct-download event for the given email and file
// path. Non-2xx responses are logged with status and body text and returned
// as errors; callers running this in the background swallow the error after
// logging.
func (c *Client) TrackDownload(ctx context.Context, email, filePath string) error {
	if !c.config.Enabled() {
		return errors.New("bento: missing credentials")
	}

	payload := batchEventsPayload{
		SiteUUID: c.config.SiteUUID,
		Events: []event{{
			Email: email,
			Type:  eventTypeDirectDownload,
			Details: map[string]string{
				"file_path": filePath,
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bento: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/batch/events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bento: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.basicAuth())
	req.Header.Set("User-Agent", c.userAgent)

	logger := logging.WithFields(c.logger, map[string]any{
		"email":     email,
		"file_path": filePath,
	})
	logger.Debug("bento.track_download.request")

	res, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("bento.track_download.transport_error", "error", err)
		return fmt.Errorf("bento: batch events request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		logger.Error("bento.track_download.api_error",
			"status", res.StatusCode,
			"body", string(text),
		)
		return fmt.Errorf("bento: batch events returned status %d", res.StatusCode)
	}

	var decoded map[string]any
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		// A 2xx with an unreadable body still counts as delivered.
		logger.Warn("bento.track_download.decode_response", "error", err)
		return nil
	}

	logger.Info("bento.track_download.submitted", "response", decoded)
	return nil
}

func (c *Client) basicAuth() string {
	credentials := c.config.PublishableKey + ":" + c.config.SecretKey
	return base64.StdEncoding.EncodeToString([]byte(credentials))
}
