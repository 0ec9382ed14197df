package credsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do sends a request. A non-empty form goes in the body for POST and in the
// query string otherwise, since servers only parse POST-style bodies.
func (c *Client) do(ctx context.Context, method, path string, form url.Values, bearer string) (*http.Response, error) {
	target := c.url(path)

	var body io.Reader
	if len(form) > 0 {
		if method == http.MethodPost {
			body = strings.NewReader(form.Encode())
		} else {
			target += "?" + form.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// call performs the request and decodes a JSON body into target when the
// status matches expected. target may be nil.
func (c *Client) call(ctx context.Context, method, path string, form url.Values, bearer string, expected int, target any) error {
	resp, err := c.do(ctx, method, path, form, bearer)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expected)
}

func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if err := parseErrorResponse(resp, bodyBytes); err != nil {
			return err
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if target == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
