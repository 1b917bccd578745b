package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"emsctl/internal/endpoint"
	"emsctl/internal/transport"
	"emsctl/pkg/token"
)

const maxResponseBody = 4 << 20

// do sends a JSON request to path and decodes a JSON response into out.
// A nil in sends no body; a nil out discards the response body.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out interface{}) error {
	target, err := endpoint.Join(c.baseURL, path)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return c.requestError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &transport.NetworkError{Method: method, Path: path, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &transport.AuthFailureError{
			Method:    method,
			Path:      path,
			RequestID: resp.Request.Header.Get(transport.RequestIDHeader),
			Challenge: token.ChallengeFromResponse(resp),
			Detail:    backendDetail(data),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Detail:     backendDetail(data),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

// requestError unwraps the *url.Error from http.Client so callers can
// match transport.NetworkError and context errors directly.
func (c *Client) requestError(ctx context.Context, method, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var netErr *transport.NetworkError
	if errors.As(err, &netErr) {
		return netErr
	}
	return &transport.NetworkError{Method: method, Path: path, Err: err}
}

// resolve returns the collection path for kind as seen by the current
// profile.
func (c *Client) resolve(kind endpoint.Kind) (string, error) {
	return endpoint.Resolve(c.session.Role(), kind)
}

func (c *Client) resolveItem(kind endpoint.Kind, id int) (string, error) {
	return endpoint.ResolveItem(c.session.Role(), kind, id)
}
