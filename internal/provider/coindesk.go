package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"price-ticker/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL  = "https://data-api.coindesk.com"
	DefaultEndpoint = "/index/cc/v1/latest/tick"
)

// Payload is the decoded JSON body of a latest-tick response. Numbers are kept
// as json.Number so amounts are not rounded through float64.
type Payload map[string]any

// CoinDeskProvider fetches the latest index ticks from the CoinDesk data API.
type CoinDeskProvider struct {
	client   *http.Client
	baseURL  string
	endpoint string
	tracer   trace.Tracer
}

// NewCoinDeskProvider creates a provider against baseURL+endpoint. Empty values
// fall back to the public API. A zero timeout leaves requests unbounded.
func NewCoinDeskProvider(tracer trace.Tracer, baseURL, endpoint string, timeout time.Duration) *CoinDeskProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &CoinDeskProvider{
		client:   &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		endpoint: endpoint,
		tracer:   tracer,
	}
}

// URL returns the full request URL without query parameters.
func (p *CoinDeskProvider) URL() string {
	return p.baseURL + p.endpoint
}

// Fetch issues exactly one GET with params as the query string.
func (p *CoinDeskProvider) Fetch(ctx context.Context, params map[string]string) (Payload, error) {
	ctx, span := p.tracer.Start(ctx, "coindesk.fetch-latest-tick")
	defer span.End()
	span.SetAttributes(attribute.String("instruments", params["instruments"]))

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	reqURL := p.URL()
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("fetch latest tick: %w", err)
	}
	defer resp.Body.Close()

	logger.Log.Debug("coindesk response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &UpstreamAPIError{StatusCode: resp.StatusCode, Reason: statusReason(resp)}
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}

	var payload Payload
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		span.RecordError(err)
		return nil, &UpstreamAPIError{StatusCode: resp.StatusCode, Reason: "decode response: " + err.Error()}
	}
	return payload, nil
}

// statusReason extracts the reason phrase, e.g. "Not Found" from "404 Not Found".
func statusReason(resp *http.Response) string {
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
