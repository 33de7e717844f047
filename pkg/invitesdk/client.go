package invitesdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to the invitation service. Public calls are methods on Client;
// administrative calls go through a Session.
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

// NewSession returns a Session that authenticates with accessToken. The
// token is not refreshed; obtain a new Session when it expires.
func (c *Client) NewSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// Session performs calls that require a bearer token.
type Session struct {
	client      *Client
	accessToken string
}
