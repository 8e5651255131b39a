// Package bgremove talks to a remote background-removal service.
package bgremove

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"file_tools/toolerr"
)

const (
	// DefaultURL is the remove.bg endpoint.
	DefaultURL = "https://api.remove.bg/v1.0/removebg"

	DefaultTimeout = 60 * time.Second

	// maxResponseSize bounds the image read back from the service.
	maxResponseSize = 50 << 20
)

// Remover removes the background of an image and returns a PNG with an
// alpha channel.
type Remover interface {
	Remove(ctx context.Context, image []byte) ([]byte, error)
}

// Client is a remove.bg compatible HTTP client.
type Client struct {
	URL    string
	APIKey string
	Client *http.Client
}

// NewClient returns a client for url authenticating with apiKey. An empty url
// selects DefaultURL.
func NewClient(url, apiKey string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Remove uploads image as image_file with size=auto. 401 is reported as
// ErrUnauthorized, 402 and 429 as ErrQuotaExceeded and every other non-2xx
// status as ErrExternalService.
func (c *Client) Remove(ctx context.Context, image []byte) ([]byte, error) {
	const op = "bgremove.Remove"
	if c.APIKey == "" {
		return nil, toolerr.New(op, toolerr.ErrUnauthorized, fmt.Errorf("no API key configured"))
	}
	if len(image) == 0 {
		return nil, toolerr.Rejected(op, "empty image")
	}

	body, contentType, err := multipartBody(image)
	if err != nil {
		return nil, toolerr.New(op, toolerr.ErrExternalService, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, body)
	if err != nil {
		return nil, toolerr.New(op, toolerr.ErrExternalService, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Api-Key", c.APIKey)
	req.Header.Set("Accept", "image/png")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, toolerr.New(op, toolerr.ErrExternalService, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, toolerr.New(op, toolerr.ErrExternalService, fmt.Errorf("read response: %w", err))
	}
	if kind := classify(resp.StatusCode); kind != nil {
		return nil, toolerr.New(op, kind, fmt.Errorf("status %d: %s", resp.StatusCode, snippet(data)))
	}
	return data, nil
}

func multipartBody(image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image_file", "image")
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(image); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("size", "auto"); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// classify maps a response status to an error kind, nil for success.
func classify(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return toolerr.ErrUnauthorized
	case status == http.StatusPaymentRequired || status == http.StatusTooManyRequests:
		return toolerr.ErrQuotaExceeded
	default:
		return toolerr.ErrExternalService
	}
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
