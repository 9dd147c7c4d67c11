// Package airkorea is a client of the AirKorea open API
package airkorea

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"github.com/secmon-lab/misemon/pkg/metrics"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public endpoint of the AirKorea API
	DefaultBaseURL = "https://apis.data.go.kr/B552584"
	// DefaultTimeout bounds a single request
	DefaultTimeout = 10 * time.Second
	// NumOfRows is the page size requested from the alarm API
	NumOfRows = 100
	// APIVersion is sent to the station API
	APIVersion = "1.0"

	alarmPath   = "/UlfptcaAlarmInqireSvc/getUlfptcaAlarmInfo"
	stationPath = "/MsrstnInfoInqireSvc/getNearbyMsrstnList"

	apiAlarm   = "alarm"
	apiStation = "station"
)

// Client calls the AirKorea API
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout is used as is.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithRateLimit limits outbound requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, burst))
	}
}

// New creates an AirKorea client
func New(serviceKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetAlarmInfo fetches one page of particulate-matter advisories for a year
func (c *Client) GetAlarmInfo(ctx context.Context, year, page int) (*model.RawResponse, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("returnType", "json")
	params.Set("numOfRows", strconv.Itoa(NumOfRows))
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("year", strconv.Itoa(year))

	raw, err := c.get(ctx, apiAlarm, alarmPath, params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get alarm info",
			goerr.V("year", year),
			goerr.V("page", page),
		)
	}
	return raw, nil
}

type stationEnvelope struct {
	Response *struct {
		Header *model.EnvelopeHeader `json:"header"`
		Body   *struct {
			Items []model.Station `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// NearbyStations lists measuring stations close to a TM coordinate, nearest first
func (c *Client) NearbyStations(ctx context.Context, coord model.TMCoord) ([]model.Station, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("ver", APIVersion)
	params.Set("tmX", strconv.FormatFloat(coord.X, 'f', -1, 64))
	params.Set("tmY", strconv.FormatFloat(coord.Y, 'f', -1, 64))
	params.Set("returnType", "json")

	raw, err := c.get(ctx, apiStation, stationPath, params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get nearby stations",
			goerr.V("tmX", coord.X),
			goerr.V("tmY", coord.Y),
		)
	}

	var env stationEnvelope
	if err := json.Unmarshal(raw.Data, &env); err != nil || env.Response == nil || env.Response.Body == nil {
		return nil, goerr.Wrap(model.ErrInvalidStructure, "unexpected station response",
			goerr.V("body", truncate(string(raw.Data), 256)))
	}
	if h := env.Response.Header; h != nil && h.ResultCode != model.ResultCodeSuccess {
		return nil, goerr.New("station API returned an error",
			goerr.V("resultCode", h.ResultCode),
			goerr.V("resultMsg", h.ResultMsg))
	}

	if env.Response.Body.Items == nil {
		return []model.Station{}, nil
	}
	return env.Response.Body.Items, nil
}

func (c *Client) get(ctx context.Context, api, path string, params url.Values) (*model.RawResponse, error) {
	logger := ctxlog.From(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classifyWaitError(ctx, err)
		}
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid API URL",
			goerr.T(model.ErrTagRequestConfig),
			goerr.V("baseURL", c.baseURL))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.T(model.ErrTagRequestConfig))
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(api, "transport_error").Inc()
		return nil, classifyTransportError(err)
	}
	defer safeClose(ctx, resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(api, "transport_error").Inc()
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequestsTotal.WithLabelValues(api, strconv.Itoa(resp.StatusCode)).Inc()
		return nil, goerr.New("unexpected status code",
			goerr.T(model.ErrTagHTTPStatus),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", truncate(string(body), 256)),
		)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(api, "ok").Inc()
	logger.Debug("upstream response received",
		"api", api,
		"status", resp.StatusCode,
		"size", len(body),
	)

	return &model.RawResponse{
		Data:       json.RawMessage(body),
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}, nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return goerr.Wrap(err, "request timed out", goerr.T(model.ErrTagTimeout))
	}
	return goerr.Wrap(err, "no response received", goerr.T(model.ErrTagNoResponse))
}

// classifyWaitError tags a failed rate limiter wait. The wait fails only when
// ctx is cancelled or its deadline passes, or would pass before a token frees.
func classifyWaitError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return goerr.Wrap(err, "request cancelled while rate limited", goerr.T(model.ErrTagNoResponse))
	}
	return goerr.Wrap(err, "request timed out while rate limited", goerr.T(model.ErrTagTimeout))
}

func safeClose(ctx context.Context, c io.Closer) {
	if err := c.Close(); err != nil {
		ctxlog.From(ctx).Warn("failed to close response body", "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
