// Package tracker is the client SDK for the rollcall tracker service.
package tracker

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultTimeout = 15 * time.Second

type NewClientOpts struct {
	TrackerUrl string
	BearerAuth *NewClientBearerAuthOpts
	Id         string

	// Timeout bounds every request, defaults to DefaultTimeout
	Timeout time.Duration
}

type NewClientBearerAuthOpts struct {
	Token string
}

func NewClient(opts NewClientOpts) (*Client, error) {
	timeout := DefaultTimeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	client := &Client{
		BearerAuth: opts.BearerAuth,
		HttpClient: &http.Client{Timeout: timeout},
		Id:         opts.Id,
	}

	trackerUrl, err := url.Parse(opts.TrackerUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provided trackerUrl[%s]: %w", opts.TrackerUrl, err)
	}
	if trackerUrl.Scheme == "" || trackerUrl.Host == "" {
		return nil, fmt.Errorf("failed to determine url scheme and host of trackerUrl[%s]", opts.TrackerUrl)
	}
	client.TrackerUrl = trackerUrl

	return client, nil
}

type Client struct {
	// TrackerUrl is the URL where the tracker service is accessible at
	TrackerUrl *url.URL
	BearerAuth *NewClientBearerAuthOpts

	// HttpClient is the HTTP client
	HttpClient *http.Client

	// Id will be included in the user-agent for identification
	Id string
}

// WithToken returns a copy of the client that authenticates as `token`
func (c Client) WithToken(token string) *Client {
	c.BearerAuth = &NewClientBearerAuthOpts{Token: token}
	return &c
}
