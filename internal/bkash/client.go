package bkash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nin-supply/commerce/internal/errors"
)

// Config holds the provider endpoint and merchant credentials.
type Config struct {
	BaseURL   string
	Username  string
	Password  string
	AppKey    string
	AppSecret string
	Timeout   time.Duration
}

// Tokenized checkout endpoints, relative to the base URL.
const (
	pathGrantToken = "/tokenized/checkout/token/grant"
	pathCreate     = "/tokenized/checkout/create"
	pathExecute    = "/tokenized/checkout/execute"
	pathQuery      = "/tokenized/checkout/payment/status"
	pathSearch     = "/tokenized/checkout/general/searchTransaction"
	pathRefund     = "/tokenized/checkout/payment/refund"
)

// apiClient is the HTTP plumbing shared by both gateway strategies.
type apiClient struct {
	cfg        Config
	httpClient *http.Client
}

func newAPIClient(cfg Config) *apiClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &apiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type grantResult struct {
	StatusCode    string `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	IDToken       string `json:"id_token"`
	TokenType     string `json:"token_type"`
	ExpiresIn     int64  `json:"expires_in"`
}

// grantToken authenticates against the provider and returns a bearer token
// with its validity window.
func (c *apiClient) grantToken(ctx context.Context) (*grantResult, error) {
	payload, err := json.Marshal(map[string]string{
		"app_key":    c.cfg.AppKey,
		"app_secret": c.cfg.AppSecret,
	})
	if err != nil {
		return nil, errors.Internal("failed to marshal token grant request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+pathGrantToken, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Internal("failed to build token grant request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("username", c.cfg.Username)
	req.Header.Set("password", c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Upstream("payment provider token grant failed", err)
	}
	defer resp.Body.Close()

	var result grantResult
	if err := decodeBody(resp, &result); err != nil {
		return nil, err
	}
	if result.IDToken == "" {
		return nil, errors.Upstream(
			fmt.Sprintf("payment provider refused token grant: %s", result.StatusMessage), nil,
		).WithDetails("statusCode", result.StatusCode)
	}
	return &result, nil
}

// post sends an authenticated JSON request and decodes the response into out.
func (c *apiClient) post(ctx context.Context, path, token string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal("failed to marshal provider request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Internal("failed to build provider request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", token)
	req.Header.Set("X-APP-Key", c.cfg.AppKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Upstream("payment provider request failed", err)
	}
	defer resp.Body.Close()

	return decodeBody(resp, out)
}

func decodeBody(resp *http.Response, out interface{}) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Upstream("failed to read provider response", err)
	}
	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		return errors.Upstream(
			fmt.Sprintf("payment provider returned status %d: %s", resp.StatusCode, msg), nil,
		).WithDetails("httpStatus", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Upstream("failed to decode provider response", err)
	}
	return nil
}
