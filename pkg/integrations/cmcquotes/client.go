package cmcquotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DEATHAIsol/instantfi/pkg/types/market"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://pro-api.coinmarketcap.com"
	DefaultTimeout = 15 * time.Second

	// APIKeyHeader carries the secret key on every request.
	// https://coinmarketcap.com/api/documentation/v1/#section/Authentication
	APIKeyHeader = "X-CMC_PRO_API_KEY"

	quotesLatestPath = "/v2/cryptocurrency/quotes/latest"
	maxBodyBytes     = 4 << 20
)

var _ market.QuoteFetcher = (*Client)(nil)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=cmcquotes_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches latest quotes from CoinMarketCap in a single batched call.
type Client struct {
	baseURL    string
	apiKey     string
	currency   string
	timeout    time.Duration
	httpClient HTTPClient
	header     http.Header
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds headers sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithCurrency sets the reference currency quotes are converted to.
func WithCurrency(currency string) Option {
	return func(c *Client) {
		c.currency = strings.ToUpper(currency)
	}
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     strings.TrimSpace(apiKey),
		currency:   market.CurrencyUSD,
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Currency() string {
	return c.currency
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type status struct {
	ErrorCode    int     `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Status *status                    `json:"status"`
}

// FetchQuotes requests quotes for all ids in one call. Failures carry a
// market.ErrorKind retrievable with market.KindOf.
func (c *Client) FetchQuotes(ctx context.Context, ids []string) (market.RawQuoteMap, error) {
	if len(ids) == 0 {
		return nil, market.Errorf(market.KindNoIdentifiers, "no provider identifiers given")
	}
	if !c.Configured() {
		return nil, market.Errorf(market.KindUnconfigured, "coinmarketcap api key not configured")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("id", strings.Join(ids, ","))
	query.Set("convert", c.currency)
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, quotesLatestPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, market.NewError(market.KindBadResponse, errors.Wrap(err, "creating request"))
	}
	req.Header = c.header.Clone()
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, market.NewError(market.KindProviderUnavailable, errors.Wrap(err, "performing request"))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, market.NewError(market.KindProviderUnavailable, errors.Wrap(err, "reading response"))
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := fmt.Sprintf("unexpected status code: %d", res.StatusCode)
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Status != nil && env.Status.ErrorMessage != nil {
			msg += " (" + *env.Status.ErrorMessage + ")"
		}
		return nil, market.Errorf(market.KindProviderUnavailable, "%s", msg)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, market.NewError(market.KindBadResponse, errors.Wrap(err, "decoding response"))
	}

	if env.Status != nil && env.Status.ErrorCode > 0 {
		msg := "unknown provider error"
		if env.Status.ErrorMessage != nil && *env.Status.ErrorMessage != "" {
			msg = *env.Status.ErrorMessage
		}
		return nil, market.Errorf(market.KindProviderError, "code %d: %s", env.Status.ErrorCode, msg)
	}

	if env.Data == nil {
		return nil, market.Errorf(market.KindBadResponse, "response has no data envelope")
	}

	return market.RawQuoteMap(env.Data), nil
}
