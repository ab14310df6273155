package keactrl

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	pkgerrors "github.com/pkg/errors"
)

// Sends control commands to the Kea Control Agent over HTTP. It uses a
// common REST client which is safe for concurrent use. The timeout
// covers each command round trip; the reconciler relies on the client
// never blocking indefinitely.
type Client struct {
	innerClient *resty.Client
	url         string
}

// Creates a new client for the control agent at the specified URL.
func NewClient(url string, timeout time.Duration) *Client {
	innerClient := resty.New()
	innerClient.SetTimeout(timeout)
	return &Client{
		innerClient: innerClient,
		url:         strings.TrimRight(url, "/"),
	}
}

// Sends a command to the control agent and returns the first response.
// The control agent replies with a list holding one response per
// addressed daemon; this tool always addresses the single dhcp4
// daemon.
func (c *Client) Send(command *Command) (*Response, error) {
	var responses []Response
	httpResponse, err := c.innerClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(command).
		SetResult(&responses).
		Post(c.url)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to send the %s command to %s", command.Command, c.url)
	}
	if httpResponse.IsError() {
		return nil, pkgerrors.Errorf("control agent at %s returned status %d for the %s command",
			c.url, httpResponse.StatusCode(), command.Command)
	}
	if len(responses) == 0 {
		return nil, pkgerrors.Errorf("control agent at %s returned no response for the %s command",
			c.url, command.Command)
	}
	return &responses[0], nil
}
