package cadsdk

import (
	"github.com/imroc/req/v3"
	"github.com/studiosync/studiosync/internal/version"
)

const (
	HeaderUserAgent = "User-Agent"
	apiVersion      = "v10"
)

// Client talks to the remote document platform's REST API. Request signing is
// delegated to the platform's API key scheme; callers get typed endpoints and
// never touch raw HTTP.
type Client struct {
	client  *req.Client
	baseURL string
}

// Config holds the credentials and endpoint for a Client.
type Config struct {
	BaseURL   string
	AccessKey string
	SecretKey string
}

// New creates a new API client.
func New(cfg *Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrNoCredentials
	}

	client := req.C().
		SetBaseURL(cfg.BaseURL).
		SetCommonBasicAuth(cfg.AccessKey, cfg.SecretKey).
		SetCommonHeader(HeaderUserAgent, "StudioSync/"+version.Version).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal).
		SetCommonErrorResult(&APIError{})

	return &Client{
		client:  client,
		baseURL: cfg.BaseURL,
	}, nil
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}
