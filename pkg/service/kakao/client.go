// Package kakao converts coordinates with the Kakao Local API
package kakao

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/metrics"
)

const (
	// DefaultBaseURL is the public endpoint of the Kakao API
	DefaultBaseURL = "https://dapi.kakao.com"

	transcoordPath = "/v2/local/geo/transcoord.json"
	apiTranscoord  = "kakao_transcoord"
)

// Client calls the Kakao Local API
type Client struct {
	baseURL    string
	restKey    string
	httpClient *http.Client
}

// Option configures Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// New creates a Kakao client authenticated with a REST API key
func New(restKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		restKey:    restKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type transcoordResponse struct {
	ErrorType string `json:"errorType"`
	Message   string `json:"message"`
	Documents []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"documents"`
}

// TransCoord converts a WGS84 latitude/longitude into TM coordinates
func (c *Client) TransCoord(ctx context.Context, lat, lon float64) (model.TMCoord, error) {
	params := url.Values{}
	params.Set("x", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("input_coord", "WGS84")
	params.Set("output_coord", "TM")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+transcoordPath+"?"+params.Encode(), nil)
	if err != nil {
		return model.TMCoord{}, goerr.Wrap(err, "failed to build transcoord request", goerr.T(model.ErrTagRequestConfig))
	}
	req.Header.Set("Authorization", strings.TrimSpace("KakaoAK "+c.restKey))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(apiTranscoord).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(apiTranscoord, "transport_error").Inc()
		return model.TMCoord{}, goerr.Wrap(err, "failed to call transcoord", goerr.T(model.ErrTagNoResponse))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			ctxlog.From(ctx).Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.TMCoord{}, goerr.Wrap(err, "failed to read transcoord response", goerr.T(model.ErrTagNoResponse))
	}

	// The API reports errors in the body, sometimes with a 4xx status
	var out transcoordResponse
	if err := json.Unmarshal(body, &out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(apiTranscoord, strconv.Itoa(resp.StatusCode)).Inc()
		return model.TMCoord{}, goerr.Wrap(err, "failed to decode transcoord response",
			goerr.T(model.ErrTagHTTPStatus),
			goerr.V("status", resp.StatusCode))
	}
	if out.ErrorType != "" {
		metrics.UpstreamRequestsTotal.WithLabelValues(apiTranscoord, "api_error").Inc()
		return model.TMCoord{}, goerr.New("Kakao API: "+out.Message,
			goerr.V("errorType", out.ErrorType),
			goerr.V("status", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues(apiTranscoord, strconv.Itoa(resp.StatusCode)).Inc()
		return model.TMCoord{}, goerr.New("unexpected status code",
			goerr.T(model.ErrTagHTTPStatus),
			goerr.V("status", resp.StatusCode))
	}
	if len(out.Documents) == 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues(apiTranscoord, "empty").Inc()
		return model.TMCoord{}, goerr.New("transcoord returned no documents",
			goerr.V("lat", lat),
			goerr.V("lon", lon))
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(apiTranscoord, "ok").Inc()
	return model.TMCoord{X: out.Documents[0].X, Y: out.Documents[0].Y}, nil
}
