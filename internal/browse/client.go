/*
Package browse implements the file listing and presentation layer: a small
gateway client for fetching the listing and shaping share/delete calls, and
an explicit UI state struct driven through a single reducer instead of
ambient globals.
*/
package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"rdrive/internal/app/files"
	"rdrive/internal/pkg/errs"
)

// Client talks to the gateway's HTTP surface on behalf of the UI.
type Client struct {
	client     *http.Client
	gatewayURL string
}

// NewClient returns a gateway client (http.DefaultClient when client is nil).
func NewClient(client *http.Client, gatewayURL string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client, gatewayURL: strings.TrimSuffix(gatewayURL, "/")}
}

// decodeError turns a non-2xx gateway response into an application error,
// preserving the gateway's own error and details fields when present.
func decodeError(resp *http.Response) *errs.Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var shape struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &shape); err == nil && shape.Error != "" {
		message = shape.Error
	}

	if resp.StatusCode == http.StatusNotFound {
		return errs.NotFound("%s", message)
	}

	appErr := errs.Transport(nil, "Gateway request failed: %s", message)
	appErr.Status = resp.StatusCode
	appErr.Details = shape.Details
	return appErr
}

// List fetches the full bucket listing from the gateway.
func (c *Client) List(ctx context.Context) ([]files.Object, *errs.Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.gatewayURL+"/files", nil)
	if err != nil {
		return nil, errs.Transport(err, "Failed to build listing request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Transport(err, "Failed to fetch files")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var objects []files.Object
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, errs.Transport(err, "Failed to decode listing response")
	}

	return objects, nil
}

// Fetch streams one object through the gateway get path. The caller owns
// closing the stream.
func (c *Client) Fetch(ctx context.Context, key string) (io.ReadCloser, string, *errs.Error) {
	target := fmt.Sprintf("%s/files?key=%s", c.gatewayURL, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", errs.Transport(err, "Failed to build download request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", errs.Transport(err, "Failed to download file")
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", decodeError(resp)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// Share requests a 24-hour share link for the key.
func (c *Client) Share(ctx context.Context, key string) (string, *errs.Error) {
	payload, _ := json.Marshal(map[string]string{"key": key})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/share", strings.NewReader(string(payload)))
	if err != nil {
		return "", errs.Transport(err, "Failed to build share request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errs.Transport(err, "Failed to generate share link")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	var shape struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&shape); err != nil {
		return "", errs.Transport(err, "Failed to decode share response")
	}

	return shape.URL, nil
}

// Delete removes one object through the gateway.
func (c *Client) Delete(ctx context.Context, key string) *errs.Error {
	target := fmt.Sprintf("%s/files?key=%s", c.gatewayURL, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return errs.Transport(err, "Failed to build delete request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Transport(err, "Failed to delete file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	return nil
}
