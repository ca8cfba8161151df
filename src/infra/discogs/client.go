package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/contre95/discogsmeta/src/features/metadata"
	"golang.org/x/time/rate"
)

// Ensure Client implements metadata.Catalog
var _ metadata.Catalog = (*Client)(nil)

// ErrNotFound is returned when the catalog has no entity for the requested id.
var ErrNotFound = errors.New("discogs: not found")

// StatusError is returned for every non-2xx answer other than 404.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discogs API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Observer receives one observation per HTTP request sent to the catalog.
type Observer interface {
	ObserveCatalogRequest(endpoint, status string, duration time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	// RequestsPerMinute paces outgoing requests. Zero disables pacing.
	RequestsPerMinute int
	// Timeout bounds a single request. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
}

// Client is a Discogs API client.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	observer   Observer
}

// NewClient creates a new Discogs client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		token:      opts.Token,
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		observer:   opts.Observer,
	}
}

// GetRelease fetches a release by id.
func (c *Client) GetRelease(ctx context.Context, id int) (*metadata.Release, error) {
	var release metadata.Release
	if err := c.get(ctx, "release", fmt.Sprintf("/releases/%d", id), nil, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// GetMaster fetches a master release by id.
func (c *Client) GetMaster(ctx context.Context, id int) (*metadata.Master, error) {
	var master metadata.Master
	if err := c.get(ctx, "master", fmt.Sprintf("/masters/%d", id), nil, &master); err != nil {
		return nil, err
	}
	return &master, nil
}

// GetArtist fetches an artist by id.
func (c *Client) GetArtist(ctx context.Context, id int) (*metadata.Artist, error) {
	var artist metadata.Artist
	if err := c.get(ctx, "artist", fmt.Sprintf("/artists/%d", id), nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetArtistReleases fetches one page of an artist's release listing. Nil page and sort use the API defaults.
func (c *Client) GetArtistReleases(ctx context.Context, artistID int, page *metadata.Pagination, sort *metadata.SortOrder) (*metadata.ArtistReleases, error) {
	query := url.Values{}
	addPagination(query, page)
	if sort != nil {
		if sort.Sort != "" {
			query.Set("sort", sort.Sort)
		}
		if sort.Order != "" {
			query.Set("sort_order", sort.Order)
		}
	}

	var releases metadata.ArtistReleases
	if err := c.get(ctx, "artist_releases", fmt.Sprintf("/artists/%d/releases", artistID), query, &releases); err != nil {
		return nil, err
	}
	return &releases, nil
}

// Search runs a database search.
func (c *Client) Search(ctx context.Context, q metadata.SearchQuery, page *metadata.Pagination) (*metadata.SearchResults, error) {
	query := url.Values{}
	if q.Type != "" {
		query.Set("type", string(q.Type))
	}
	if q.Query != "" {
		query.Set("q", q.Query)
	}
	if q.ReleaseTitle != "" {
		query.Set("release_title", q.ReleaseTitle)
	}
	if q.Artist != "" {
		query.Set("artist", q.Artist)
	}
	if q.Year != nil {
		query.Set("year", strconv.Itoa(*q.Year))
	}
	addPagination(query, page)

	var results metadata.SearchResults
	if err := c.get(ctx, "search", "/database/search", query, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

func addPagination(query url.Values, page *metadata.Pagination) {
	if page == nil {
		return
	}
	if page.Page > 0 {
		query.Set("page", strconv.Itoa(page.Page))
	}
	if page.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(page.PerPage))
	}
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for discogs rate limiter: %w", err)
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Discogs token=%s", c.token))
	}

	slog.Debug("Discogs request", "endpoint", endpoint, "path", path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "error", start)
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) observe(endpoint, status string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveCatalogRequest(endpoint, status, time.Since(start))
	}
}
