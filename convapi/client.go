package convapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"git.autistici.org/ai3/tools/masktr/history"
	"git.autistici.org/ai3/tools/masktr/httptransport"
	"github.com/cenkalti/backoff/v4"
)

// Client talks to a remote conversion API server, retrying transient
// failures. Conversion errors (bad format, out of range) come back as
// the same typed errors the local parser returns.
type Client struct {
	uri    string
	client *http.Client
}

func NewClient(uri string, client *http.Client) *Client {
	if client == nil {
		client = httptransport.NewClient(nil)
	}
	return &Client{
		uri:    uri,
		client: client,
	}
}

// Convert submits a mask expression to the remote server.
func (c *Client) Convert(ctx context.Context, input string) (*ConvertResponse, error) {
	var resp ConvertResponse
	err := backoff.Retry(
		func() error {
			return httptransport.Do(ctx, c.client, "POST",
				httptransport.JoinURL(c.uri, apiURLConvert),
				&ConvertRequest{Input: input}, &resp)
		},
		backoff.WithContext(httptransport.NewRetryPolicy(), ctx),
	)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// History fetches the most recent conversions from the remote server.
func (c *Client) History(ctx context.Context, format string, limit int) ([]*history.Conversion, error) {
	values := make(url.Values)
	if format != "" {
		values.Set("format", format)
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	uri := httptransport.JoinURL(c.uri, apiURLHistoryFind)
	if len(values) > 0 {
		uri += "?" + values.Encode()
	}

	var out []*history.Conversion
	err := backoff.Retry(
		func() error {
			return httptransport.Do(ctx, c.client, "GET", uri, nil, &out)
		},
		backoff.WithContext(httptransport.NewRetryPolicy(), ctx),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
