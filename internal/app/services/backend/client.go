package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/exceptions"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxListPages bounds how many "next" links a list call follows.
const maxListPages = 100

const defaultMaxResponseBytes = 8 << 20

// ErrNotFound is wrapped by Get when the backend answers 404.
var ErrNotFound = errors.New("backend resource not found")

// Client performs rate limited GET requests against the marketplace REST backend.
type Client struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger

	// MaxResponseBytes caps a response body; larger answers are rejected.
	MaxResponseBytes int64
}

func NewClient(logger *zap.Logger, baseUrl string, timeout time.Duration, requestsPerSecond float64) *Client {
	limit := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
		burst = int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(limit, burst),
		Log:        logger,

		MaxResponseBytes: defaultMaxResponseBytes,
	}
}

// Get fetches path, relative to the base URL, or an absolute URL as found in
// pagination links. A non 2xx answer is returned as an error carrying the
// backend's detail or message field.
func (c *Client) Get(ctx context.Context, pathOrURL, resource string) ([]byte, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrRateLimitWait(err)
	}

	url := pathOrURL
	if !strings.HasPrefix(pathOrURL, "http://") && !strings.HasPrefix(pathOrURL, "https://") {
		url = c.BaseUrl + pathOrURL
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, url, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok && requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	maxBytes := c.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxResponseBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, exceptions.ErrBackendDecodeResponse(err, resource)
	}
	if int64(len(body)) > maxBytes {
		return nil, exceptions.ErrBackendDecodeResponse(fmt.Errorf("response body exceeds %d bytes", maxBytes), resource)
	}

	c.Log.Debug("backend.Client.Get answered",
		zap.String(constvars.LoggingURLKey, url),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Int(constvars.LoggingResponseLengthKey, len(body)),
	)

	if resp.StatusCode == constvars.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, exceptions.ErrBackendUnexpectedStatus(errors.New(errorDetail(body)), resp.StatusCode, resource)
	}

	if !gjson.ValidBytes(body) {
		return nil, exceptions.ErrBackendDecodeResponse(errors.New("invalid JSON body"), resource)
	}
	return body, nil
}

// List follows the backend pagination starting at path and returns the raw
// JSON of every item. Both a bare array and a {"results": [...], "next": url}
// page are accepted.
func (c *Client) List(ctx context.Context, path, resource string) ([][]byte, error) {
	var items [][]byte
	next := path
	for page := 0; next != "" && page < maxListPages; page++ {
		body, err := c.Get(ctx, next, resource)
		if err != nil {
			return nil, err
		}

		parsed := gjson.ParseBytes(body)
		var result gjson.Result
		switch {
		case parsed.IsArray():
			result = parsed
			next = ""
		case parsed.Get("results").IsArray():
			result = parsed.Get("results")
			next = parsed.Get("next").String()
		case parsed.Get("data").IsArray():
			result = parsed.Get("data")
			next = ""
		default:
			return nil, exceptions.ErrBackendDecodeResponse(errors.New("unexpected list payload"), resource)
		}

		result.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				items = append(items, []byte(item.Raw))
			}
			return true
		})
	}
	return items, nil
}

func errorDetail(body []byte) string {
	for _, field := range []string{"detail", "message", "error"} {
		if value := gjson.GetBytes(body, field); value.Exists() && value.String() != "" {
			return value.String()
		}
	}
	if len(body) > 256 {
		return string(body[:256])
	}
	return string(body)
}
