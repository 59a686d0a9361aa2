// Package api implements the ArchiveClient port over the archive's HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/scrybe-labs/scrybe-cli/internal/core/domain"
	"github.com/scrybe-labs/scrybe-cli/internal/core/ports/driven"
	"github.com/scrybe-labs/scrybe-cli/internal/logger"
)

const (
	// DefaultBaseURL is the archive API endpoint used when none is
	// configured.
	DefaultBaseURL = "http://localhost:8900"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default proactive throttle (requests/sec).
	DefaultRateLimit = 5.0

	// maxErrorBody caps how much of an error response body is read for
	// the error message.
	maxErrorBody = 4 * 1024
)

// Ensure Client implements the driven port.
var _ driven.ArchiveClient = (*Client)(nil)

// Client talks to the archive HTTP API. All methods map transport
// failures onto *domain.SearchError so the orchestration core can
// classify them without knowing about HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client, used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithRateLimit sets the proactive throttle in requests per second.
// Zero or negative disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates an archive API client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// segmentJSON is the wire shape of one transcript segment match.
type segmentJSON struct {
	VideoID       string `json:"video_id"`
	VideoTitle    string `json:"video_title"`
	StartMS       int    `json:"start_ms"`
	EndMS         int    `json:"end_ms"`
	Text          string `json:"text"`
	ContextBefore string `json:"context_before,omitempty"`
	ContextAfter  string `json:"context_after,omitempty"`
	Language      string `json:"language,omitempty"`
}

type segmentPageJSON struct {
	Items   []segmentJSON `json:"items"`
	Total   int           `json:"total"`
	Offset  int           `json:"offset"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"has_more"`
}

type videoMatchJSON struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Snippet      string    `json:"snippet,omitempty"`
	ChannelID    string    `json:"channel_id"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
}

type videoPageJSON struct {
	Items []videoMatchJSON `json:"items"`
	Total int              `json:"total"`
}

type channelJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VideoCount  int       `json:"video_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type playlistJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ChannelID string    `json:"channel_id"`
	ItemCount int       `json:"item_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listPageJSON[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type videoJSON struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ChannelID     string    `json:"channel_id"`
	ChannelTitle  string    `json:"channel_title"`
	DurationSec   int       `json:"duration_sec"`
	PublishedAt   time.Time `json:"published_at"`
	HasTranscript bool      `json:"has_transcript"`
	Languages     []string  `json:"languages,omitempty"`
}

// SearchSegments queries time-coded transcript segments.
func (c *Client) SearchSegments(ctx context.Context, text string, offset, limit int, language string) (*driven.SegmentPage, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	if language != "" {
		q.Set("language", language)
	}

	var page segmentPageJSON
	if err := c.getJSON(ctx, "/api/search/segments", q, &page); err != nil {
		return nil, err
	}

	items := make([]domain.Segment, len(page.Items))
	for i, s := range page.Items {
		items[i] = domain.Segment{
			VideoID:       s.VideoID,
			VideoTitle:    s.VideoTitle,
			StartMS:       s.StartMS,
			EndMS:         s.EndMS,
			Text:          s.Text,
			ContextBefore: s.ContextBefore,
			ContextAfter:  s.ContextAfter,
			Language:      s.Language,
		}
	}
	return &driven.SegmentPage{
		Items:   items,
		Total:   page.Total,
		Offset:  page.Offset,
		Limit:   page.Limit,
		HasMore: page.HasMore,
	}, nil
}

// SearchTitles queries video titles with a single capped request.
func (c *Client) SearchTitles(ctx context.Context, text string, limit int) (*driven.VideoPage, error) {
	return c.searchVideos(ctx, text, "title", limit)
}

// SearchDescriptions queries video descriptions with a single capped request.
func (c *Client) SearchDescriptions(ctx context.Context, text string, limit int) (*driven.VideoPage, error) {
	return c.searchVideos(ctx, text, "description", limit)
}

func (c *Client) searchVideos(ctx context.Context, text, field string, limit int) (*driven.VideoPage, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("field", field)
	q.Set("limit", strconv.Itoa(limit))

	var page videoPageJSON
	if err := c.getJSON(ctx, "/api/search/videos", q, &page); err != nil {
		return nil, err
	}

	items := make([]domain.VideoMatch, len(page.Items))
	for i, v := range page.Items {
		items[i] = domain.VideoMatch{
			VideoID:      v.VideoID,
			Title:        v.Title,
			Snippet:      v.Snippet,
			ChannelID:    v.ChannelID,
			ChannelTitle: v.ChannelTitle,
			PublishedAt:  v.PublishedAt,
		}
	}
	return &driven.VideoPage{Items: items, TotalCount: page.Total}, nil
}

// ListChannels returns a page of archived channels and the total count.
func (c *Client) ListChannels(ctx context.Context, offset, limit int) ([]domain.Channel, int, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var page listPageJSON[channelJSON]
	if err := c.getJSON(ctx, "/api/channels", q, &page); err != nil {
		return nil, 0, err
	}

	channels := make([]domain.Channel, len(page.Items))
	for i, ch := range page.Items {
		channels[i] = domain.Channel{
			ID:          ch.ID,
			Title:       ch.Title,
			Description: ch.Description,
			VideoCount:  ch.VideoCount,
			UpdatedAt:   ch.UpdatedAt,
		}
	}
	return channels, page.Total, nil
}

// ListPlaylists returns a page of archived playlists and the total count.
func (c *Client) ListPlaylists(ctx context.Context, offset, limit int) ([]domain.Playlist, int, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var page listPageJSON[playlistJSON]
	if err := c.getJSON(ctx, "/api/playlists", q, &page); err != nil {
		return nil, 0, err
	}

	playlists := make([]domain.Playlist, len(page.Items))
	for i, p := range page.Items {
		playlists[i] = domain.Playlist{
			ID:        p.ID,
			Title:     p.Title,
			ChannelID: p.ChannelID,
			ItemCount: p.ItemCount,
			UpdatedAt: p.UpdatedAt,
		}
	}
	return playlists, page.Total, nil
}

// GetVideo returns full metadata for one video.
func (c *Client) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	var v videoJSON
	err := c.getJSON(ctx, "/api/videos/"+url.PathEscape(id), nil, &v)
	if err != nil {
		var se *domain.SearchError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	return &domain.Video{
		ID:            v.ID,
		Title:         v.Title,
		Description:   v.Description,
		ChannelID:     v.ChannelID,
		ChannelTitle:  v.ChannelTitle,
		Duration:      time.Duration(v.DurationSec) * time.Second,
		PublishedAt:   v.PublishedAt,
		HasTranscript: v.HasTranscript,
		Languages:     v.Languages,
	}, nil
}

// getJSON issues a rate-limited GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.NewTimeoutError(err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.NewNetworkError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logger.Debug("GET %s", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.NewServerError(resp.StatusCode,
			fmt.Errorf("GET %s: %s", path, firstLine(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewServerError(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// classifyTransportError maps a failed round trip onto a SearchError kind.
func classifyTransportError(err error) *domain.SearchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewTimeoutError(err)
	}
	return domain.NewNetworkError(err)
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
