package credsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to a CredMarket server. It holds no credentials; see Session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps a session token obtained from Login or Verify.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
