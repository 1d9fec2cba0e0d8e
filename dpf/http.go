// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ArrowContentType is the media type of every request and response body.
const ArrowContentType = "application/vnd.apache.arrow.stream"

// DefaultHTTPPrefix is the path under which the engine serves calls.
const DefaultHTTPPrefix = "/dpf"

// HTTPTransport posts each call to {base}{prefix}/{method}.
type HTTPTransport struct {
	baseURL   string
	prefix    string
	client    *http.Client
	userAgent string
	decoder   *zstd.Decoder
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient sets the http.Client used for calls.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTPTransport) { t.client = c }
}

// WithHTTPPrefix overrides DefaultHTTPPrefix.
func WithHTTPPrefix(prefix string) HTTPOption {
	return func(t *HTTPTransport) { t.prefix = strings.TrimSuffix(prefix, "/") }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(t *HTTPTransport) { t.userAgent = ua }
}

// NewHTTPTransport returns a transport for an engine reachable at baseURL.
func NewHTTPTransport(baseURL string, opts ...HTTPOption) (*HTTPTransport, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	t := &HTTPTransport{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		prefix:    DefaultHTTPPrefix,
		client:    http.DefaultClient,
		userAgent: "dpf-go",
		decoder:   dec,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// RoundTrip implements Transport. Engine exceptions come back with a 4xx or
// 5xx status and an Arrow body; those bodies are returned for decoding.
func (t *HTTPTransport) RoundTrip(ctx context.Context, method string, request []byte) ([]byte, error) {
	url := t.baseURL + t.prefix + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(request))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", ArrowContentType)
	req.Header.Set("Accept-Encoding", "zstd")
	req.Header.Set("User-Agent", t.userAgent)
	// trace propagation travels in the batch metadata, not in headers

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", method, err)
	}
	if resp.Header.Get("Content-Encoding") == "zstd" {
		if body, err = t.decoder.DecodeAll(body, nil); err != nil {
			return nil, fmt.Errorf("decompressing %s response: %w", method, err)
		}
	}
	if ct := resp.Header.Get("Content-Type"); ct != ArrowContentType {
		return nil, fmt.Errorf("%w: %s returned %s with content type %q", ErrProtocol, method, resp.Status, ct)
	}
	return body, nil
}

// Close releases the decoder.
func (t *HTTPTransport) Close() error {
	t.decoder.Close()
	return nil
}
