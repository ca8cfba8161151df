package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrInvalidImageURL     = errors.New("invalid image url")
	ErrImageHostNotAllowed = errors.New("image host not allowed")
)

// ImageProxy fetches catalog images on behalf of clients that cannot send the catalog's required headers.
type ImageProxy struct {
	client       *http.Client
	userAgent    string
	allowedHosts map[string]bool
}

// NewImageProxy creates a new image proxy. A nil client means http.DefaultClient.
// With no allowed hosts every host is proxied.
func NewImageProxy(client *http.Client, userAgent string, allowedHosts []string) *ImageProxy {
	if client == nil {
		client = http.DefaultClient
	}
	var hosts map[string]bool
	if len(allowedHosts) > 0 {
		hosts = make(map[string]bool, len(allowedHosts))
		for _, host := range allowedHosts {
			hosts[strings.ToLower(host)] = true
		}
	}
	return &ImageProxy{client: client, userAgent: userAgent, allowedHosts: hosts}
}

// GetImageResponse issues a plain GET for imageURL and returns the raw response. The caller owns the body.
func (p *ImageProxy) GetImageResponse(ctx context.Context, imageURL string) (*http.Response, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w %q", ErrInvalidImageURL, imageURL)
	}
	if p.allowedHosts != nil && !p.allowedHosts[strings.ToLower(parsed.Hostname())] {
		return nil, fmt.Errorf("%w: %s", ErrImageHostNotAllowed, parsed.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	return resp, nil
}
