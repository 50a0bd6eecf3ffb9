// Package appsheet is a client for the AppSheet table REST API.
//
// The API is awkward in three ways the client works around: different
// deployments accept the application access key in different places (header,
// query parameter, or a header whose value is a key=value assignment); a 200
// response with an empty body means "accepted but not authenticated", which
// calls for retrying the other key placements and finally an alternate API
// domain; and transient 429/5xx responses need retrying with backoff. A 3xx
// response is always a login-wall redirect and is never followed.
package appsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultRegion is the public AppSheet API domain.
	DefaultRegion = "www.appsheet.com"
	// FallbackRegion is tried when the configured region keeps returning
	// the empty-200 signature.
	FallbackRegion = "api.appsheet.com"

	userAgent      = "ctba-membership-card/1.0"
	connectTimeout = 10 * time.Second
	minReadTimeout = 10 * time.Second

	// DefaultMaxAttempts bounds per-placement retries on transient errors.
	DefaultMaxAttempts = 2

	backoffBase = 600 * time.Millisecond
	backoffCap  = 6 * time.Second
	jitterMax   = 250 * time.Millisecond
)

// Config identifies the app, table, and credential for a fetch.
type Config struct {
	AppID     string
	TableName string
	AccessKey string

	// Region is the API domain (default www.appsheet.com).
	Region string

	// Selector is an optional AppSheet row selector expression.
	Selector string

	// RunAsUserEmail runs the query with that user's permissions.
	RunAsUserEmail string

	// Timeout is the read timeout per attempt, floored at 10s.
	Timeout time.Duration

	// MaxAttempts bounds transient-error retries per placement (default 2).
	MaxAttempts int
}

// Client fetches table rows from the AppSheet API.
type Client struct {
	cfg  Config
	http *http.Client

	// test seams
	scheme   string
	fallback string
	sleep    func(context.Context, time.Duration)
	jitter   func() time.Duration
}

// NewClient validates the config, applies defaults, and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	cfg.AppID = strings.TrimSpace(cfg.AppID)
	cfg.TableName = strings.TrimSpace(cfg.TableName)
	cfg.AccessKey = strings.TrimSpace(cfg.AccessKey)
	cfg.Region = strings.TrimSpace(cfg.Region)

	if cfg.AppID == "" || cfg.TableName == "" || cfg.AccessKey == "" {
		return nil, fmt.Errorf("appsheet requires app ID, table name, and application access key")
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Timeout < minReadTimeout {
		cfg.Timeout = minReadTimeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   connectTimeout + cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Redirects indicate a login wall; surface them as-is.
				return http.ErrUseLastResponse
			},
		},
		scheme:   "https",
		fallback: FallbackRegion,
		sleep: func(ctx context.Context, d time.Duration) {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
			case <-ctx.Done():
			}
		},
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(jitterMax)))
		},
	}, nil
}

// findRequest is the AppSheet "Find" action body.
type findRequest struct {
	Action     string         `json:"Action"`
	Properties findProperties `json:"Properties"`
	Rows       []any          `json:"Rows"`
}

type findProperties struct {
	Locale         string `json:"Locale"`
	Timezone       string `json:"Timezone"`
	Selector       string `json:"Selector,omitempty"`
	RunAsUserEmail string `json:"RunAsUserEmail,omitempty"`
}

func (c *Client) endpoint(domain string) string {
	return fmt.Sprintf("%s://%s/api/v2/apps/%s/tables/%s/Action",
		c.scheme, domain, c.cfg.AppID, url.PathEscape(c.cfg.TableName))
}

// backoff returns the sleep before retrying a transient failure.
func (c *Client) backoff(attempt int) time.Duration {
	d := backoffBase << attempt
	if d > backoffCap {
		d = backoffCap
	}
	d += c.jitter()
	if d > backoffCap {
		d = backoffCap
	}
	return d
}

// call posts the Find action to one domain with one credential placement,
// retrying transient failures up to MaxAttempts. It returns the last
// response received, or an error if every attempt failed at the transport
// level.
func (c *Client) call(ctx context.Context, domain string, p placement) (string, *response, error) {
	endpoint := c.endpoint(domain)

	body, err := json.Marshal(findRequest{
		Action: "Find",
		Properties: findProperties{
			Locale:         "en-US",
			Timezone:       "UTC",
			Selector:       c.cfg.Selector,
			RunAsUserEmail: c.cfg.RunAsUserEmail,
		},
		Rows: []any{},
	})
	if err != nil {
		return endpoint, nil, fmt.Errorf("marshal find request: %w", err)
	}

	var lastErr error
	var lastResp *response

	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		resp, err := c.post(ctx, endpoint, p, body)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			if classify(0, 0, true) != retrySame {
				break
			}
			c.sleep(ctx, c.backoff(attempt))
			continue
		}
		lastResp = resp
		if classify(resp.status, len(resp.body), false) == retrySame {
			c.sleep(ctx, c.backoff(attempt))
			continue
		}
		return endpoint, resp, nil
	}

	if lastResp != nil {
		return endpoint, lastResp, nil
	}
	return endpoint, nil, fmt.Errorf("AppSheet request failed after retries: %w", lastErr)
}

// post performs a single request with the credential in the given placement.
func (c *Client) post(ctx context.Context, endpoint string, p placement, body []byte) (*response, error) {
	reqURL := endpoint
	if p == placementBoth || p == placementQuery {
		reqURL += "?applicationAccessKey=" + url.QueryEscape(c.cfg.AccessKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	switch p {
	case placementBoth, placementHeader:
		req.Header.Set("ApplicationAccessKey", c.cfg.AccessKey)
	case placementHeaderAssignment:
		req.Header.Set("ApplicationAccessKey", "ApplicationAccessKey="+c.cfg.AccessKey)
	case placementQuery:
		// query parameter only
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &response{
		status: httpResp.StatusCode,
		header: httpResp.Header,
		body:   respBody,
	}, nil
}

// FindRows runs the table "find all" query and returns the raw rows.
//
// The combined header+query placement is tried first. An empty 200 advances
// through the remaining placements on the same domain, then all placements
// on the fallback domain; the first 200 with a body wins.
func (c *Client) FindRows(ctx context.Context) ([]map[string]string, error) {
	endpoint, resp, err := c.call(ctx, c.cfg.Region, placementBoth)
	if err != nil {
		return nil, err
	}

	switch classify(resp.status, len(resp.body), false) {
	case accept:
		return parseRows(endpoint, resp)
	case redirect:
		return nil, newAPIError("AppSheet API redirect", endpoint, resp)
	case advanceVariant:
		return c.findFallback(ctx, endpoint, resp)
	default:
		return nil, rejectError(endpoint, resp)
	}
}

// findFallback walks the remaining (placement, domain) combinations after an
// empty-200 response on the combined placement.
func (c *Client) findFallback(ctx context.Context, lastEndpoint string, lastResp *response) ([]map[string]string, error) {
	for _, p := range fallbackPlacements {
		endpoint, resp, err := c.call(ctx, c.cfg.Region, p)
		if err != nil {
			return nil, err
		}
		lastEndpoint, lastResp = endpoint, resp
		if classify(resp.status, len(resp.body), false) == accept {
			return parseRows(endpoint, resp)
		}
	}

	if c.cfg.Region != c.fallback {
		for _, p := range append([]placement{placementBoth}, fallbackPlacements...) {
			endpoint, resp, err := c.call(ctx, c.fallback, p)
			if err != nil {
				return nil, err
			}
			lastEndpoint, lastResp = endpoint, resp
			if classify(resp.status, len(resp.body), false) == accept {
				return parseRows(endpoint, resp)
			}
		}
	}

	return nil, newAPIError(
		"AppSheet returned empty response body after retries. Check API enabled/key/plan",
		lastEndpoint, lastResp)
}

// rejectError maps a terminal non-200 response to a diagnostic error.
func rejectError(endpoint string, resp *response) error {
	switch resp.status {
	case http.StatusForbidden:
		return newAPIError("AppSheet API forbidden (403). Check API enabled/key/plan", endpoint, resp)
	case http.StatusNotFound:
		return newAPIError("AppSheet API not found (404). Check App ID/Table name", endpoint, resp)
	default:
		return newAPIError("AppSheet API error", endpoint, resp)
	}
}

// parseRows accepts either a bare JSON array of row objects or an object
// with a Rows (or rows) array.
func parseRows(endpoint string, resp *response) ([]map[string]string, error) {
	var data any
	if err := json.Unmarshal(resp.body, &data); err != nil {
		return nil, newAPIError("AppSheet returned non-JSON response", endpoint, resp)
	}

	var rawRows []any
	switch v := data.(type) {
	case []any:
		rawRows = v
	case map[string]any:
		rows, ok := v["Rows"]
		if !ok {
			rows, ok = v["rows"]
		}
		if !ok {
			return nil, newAPIError("unexpected AppSheet response: missing 'Rows' list", endpoint, resp)
		}
		list, ok := rows.([]any)
		if !ok {
			return nil, newAPIError("unexpected AppSheet response: missing 'Rows' list", endpoint, resp)
		}
		rawRows = list
	default:
		return nil, newAPIError(fmt.Sprintf("unexpected AppSheet response type: %T", data), endpoint, resp)
	}

	out := make([]map[string]string, 0, len(rawRows))
	for _, r := range rawRows {
		obj, ok := r.(map[string]any)
		if !ok {
			return nil, newAPIError("unexpected AppSheet response: row is not an object", endpoint, resp)
		}
		row := make(map[string]string, len(obj))
		for k, v := range obj {
			row[strings.TrimSpace(k)] = stringifyCell(v)
		}
		out = append(out, row)
	}
	return out, nil
}

// stringifyCell renders a JSON cell value as the string the normalization
// pipeline expects. Integral floats lose their ".0" so numeric coercion
// downstream sees plain digits.
func stringifyCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
