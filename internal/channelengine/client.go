package channelengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultHostTemplate carries one %s slot for the account name.
const DefaultHostTemplate = "https://%s.channelengine.net"

// Response is the envelope ChannelEngine wraps every reply in. Success and
// StatusCode are application-level fields, independent of the HTTP status.
type Response struct {
	StatusCode int    `json:"StatusCode"`
	Success    bool   `json:"Success"`
	Message    string `json:"Message,omitempty"`
}

// Client talks to the ChannelEngine merchant API. Authentication is an
// apikey query parameter; the tenant account name selects the subdomain.
type Client struct {
	httpClient   *http.Client
	hostTemplate string
	logger       *logrus.Logger
}

func New(hostTemplate string, timeout time.Duration, logger *logrus.Logger) *Client {
	if hostTemplate == "" {
		hostTemplate = DefaultHostTemplate
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		hostTemplate: hostTemplate,
		logger:       logger,
	}
}

// BaseURL builds the API root for an account, e.g.
// https://demo.channelengine.net/api/v2. The account name is operator
// supplied and trusted to be URL-safe; a bad one is rejected remotely.
func (c *Client) BaseURL(accountName string) string {
	return fmt.Sprintf(c.hostTemplate, accountName) + "/api/v2"
}

// ValidateCredentials checks an account name and API key against the
// settings endpoint. It returns true only when the call succeeds end to end
// and the envelope reports StatusCode 200 with Success true. Transport
// errors, undecodable bodies and rejections all yield false.
func (c *Client) ValidateCredentials(ctx context.Context, accountName, apiKey string) bool {
	endpoint := c.BaseURL(accountName) + "/settings?apikey=" + url.QueryEscape(apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).Debug("channelengine: build settings request")
		return false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Debug("channelengine: settings request failed")
		return false
	}
	defer resp.Body.Close()

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.logger.WithError(err).Debug("channelengine: decode settings response")
		return false
	}

	return envelope.StatusCode == http.StatusOK && envelope.Success
}

// SendProducts posts the payload list to the products endpoint and returns
// the decoded envelope. It does not interpret success or failure; callers
// inspect StatusCode, Success and Message themselves.
func (c *Client) SendProducts(ctx context.Context, accountName, apiKey string, products []ProductPayload) (*Response, error) {
	endpoint := c.BaseURL(accountName) + "/products?apikey=" + url.QueryEscape(apiKey)

	body, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("encode products: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post products: %w", err)
	}
	defer resp.Body.Close()

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"count":       len(products),
		"status_code": envelope.StatusCode,
		"success":     envelope.Success,
	}).Debug("channelengine: products sent")

	return &envelope, nil
}
