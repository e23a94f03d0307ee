package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinelist/internal/biz"
	"cinelist/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultTimeout      = 10 * time.Second

	// PlaceholderPoster is served when a movie has no poster
	PlaceholderPoster = "assets/no-poster.png"
)

var errNotFound = errors.New("not found")

type movieClient struct {
	client       *http.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
	maxRetries   int
	limiter      *rate.Limiter
	log          *log.Helper
}

// NewMovieClient creates a new metadata API client
func NewMovieClient(c *conf.Tmdb, logger log.Logger) biz.MovieClient {
	mc := &movieClient{
		client:       &http.Client{Timeout: defaultTimeout},
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		log:          log.NewHelper(logger),
	}
	if c == nil {
		return mc
	}

	if d := c.Timeout.AsDuration(); d > 0 {
		mc.client.Timeout = d
	}
	if c.BaseUrl != "" {
		mc.baseURL = strings.TrimRight(c.BaseUrl, "/")
	}
	if c.ImageBaseUrl != "" {
		mc.imageBaseURL = strings.TrimRight(c.ImageBaseUrl, "/")
	}
	mc.apiKey = c.ApiKey
	mc.maxRetries = int(c.MaxRetries)
	if c.RateLimit > 0 {
		mc.limiter = rate.NewLimiter(rate.Limit(c.RateLimit), max(1, int(c.RateLimit)))
	}
	return mc
}

func (c *movieClient) SearchMovies(ctx context.Context, query string, page int) (*biz.SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var resp SearchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, upstreamError(err)
	}

	result := &biz.SearchResult{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      make([]biz.Movie, 0, len(resp.Results)),
	}
	for _, m := range resp.Results {
		result.Results = append(result.Results, movieToBiz(m))
	}
	return result, nil
}

func (c *movieClient) GetMovieDetails(ctx context.Context, movieID int) (*biz.MovieDetails, error) {
	var resp MovieDetails
	err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), nil, &resp)
	if errors.Is(err, errNotFound) {
		return nil, fmt.Errorf("%w: %d", biz.ErrMovieNotFound, movieID)
	}
	if err != nil {
		return nil, upstreamError(err)
	}

	details := &biz.MovieDetails{
		Movie:           movieToBiz(resp.Movie),
		SpokenLanguages: make([]biz.SpokenLanguage, 0, len(resp.SpokenLanguages)),
	}
	for _, l := range resp.SpokenLanguages {
		details.SpokenLanguages = append(details.SpokenLanguages, biz.SpokenLanguage{
			ISO639_1:    l.ISO639_1,
			Name:        l.Name,
			EnglishName: l.EnglishName,
		})
	}
	return details, nil
}

func (c *movieClient) CreateGuestSession(ctx context.Context) (*biz.GuestSession, error) {
	var resp GuestSessionResponse
	if err := c.get(ctx, "/authentication/guest_session/new", nil, &resp); err != nil {
		return nil, upstreamError(err)
	}
	return &biz.GuestSession{
		Success:   resp.Success,
		ID:        resp.GuestSessionID,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

func (c *movieClient) RateMovie(ctx context.Context, movieID int, sessionID string, rating float64) (*biz.RatingResult, error) {
	params := url.Values{}
	params.Set("guest_session_id", sessionID)

	body := struct {
		Value float64 `json:"value"`
	}{Value: rating}

	var resp StatusResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/movie/%d/rating", movieID), params, body, &resp)
	if errors.Is(err, errNotFound) {
		return nil, fmt.Errorf("%w: %d", biz.ErrMovieNotFound, movieID)
	}
	if err != nil {
		return nil, upstreamError(err)
	}

	return &biz.RatingResult{
		Success:       resp.Success,
		StatusCode:    resp.StatusCode,
		StatusMessage: resp.StatusMessage,
	}, nil
}

func (c *movieClient) ImageURL(path, size string) string {
	if path == "" {
		return PlaceholderPoster
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, size, path)
}

// get performs an idempotent request, retrying transient failures
func (c *movieClient) get(ctx context.Context, path string, params url.Values, out any) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			c.log.Infof("retrying %s, attempt %d/%d", path, attempt, c.maxRetries)
		}

		err := c.do(ctx, http.MethodGet, path, params, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err

		// Don't retry on 404 or when the caller gave up
		if errors.Is(err, errNotFound) || ctx.Err() != nil {
			break
		}
	}

	return lastErr
}

func (c *movieClient) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := c.withAPIKey(c.baseURL+path, params)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var status StatusResponse
		if json.NewDecoder(resp.Body).Decode(&status) == nil && status.StatusMessage != "" {
			return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, status.StatusMessage)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// withAPIKey appends the API key to requests under the base URL unless the
// caller already supplied one.
func (c *movieClient) withAPIKey(endpoint string, params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	if c.apiKey != "" && strings.HasPrefix(endpoint, c.baseURL) && !q.Has("api_key") {
		q.Set("api_key", c.apiKey)
	}
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}

func upstreamError(err error) error {
	return fmt.Errorf("%w: %w", biz.ErrUpstream, err)
}
