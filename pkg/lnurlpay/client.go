package lnurlpay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/BoltzExchange/lnaddress/internal/logger"
	"github.com/google/uuid"
)

const DefaultTimeout = 15 * time.Second

const maxResponseSize = 1 << 20

var errResponseTooLarge = fmt.Errorf("response larger than %d bytes", maxResponseSize)

type Options struct {
	// Timeout of a single request; DefaultTimeout if zero
	Timeout time.Duration
	// Proxy is an optional URL all requests are sent through
	Proxy string
	// HTTPClient replaces the default client; Proxy is ignored when it is set
	HTTPClient *http.Client
}

// Client talks to LNURL-pay services. It keeps no state between calls and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	newNonce   func() string
}

func NewClient(options Options) (*Client, error) {
	timeout := options.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid timeout: %s", timeout)
	}

	var httpClient http.Client
	if options.HTTPClient != nil {
		httpClient = *options.HTTPClient
	} else if options.Proxy != "" {
		proxy, err := url.Parse(options.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
		httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	}

	if httpClient.Timeout == 0 {
		httpClient.Timeout = timeout
	}

	return &Client{
		httpClient: &httpClient,
		newNonce:   uuid.NewString,
	}, nil
}

func (client *Client) get(ctx context.Context, endpoint string, kind error) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &HTTPError{Kind: kind, URL: endpoint, Err: err}
	}
	request.Header.Set("Accept", "application/json")

	logger.Debugf("GET %s", endpoint)
	res, err := client.httpClient.Do(request)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return nil, &HTTPError{Kind: kind, URL: endpoint, Err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.Errorf("Could not close response body of %s: %v", endpoint, err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{Kind: kind, URL: endpoint, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize+1))
	if err != nil {
		return nil, &HTTPError{Kind: kind, URL: endpoint, StatusCode: res.StatusCode, Err: err}
	}
	if len(body) > maxResponseSize {
		return nil, &HTTPError{Kind: kind, URL: endpoint, StatusCode: res.StatusCode, Err: errResponseTooLarge}
	}

	logger.Sillyf("GET %s returned %d: %s", endpoint, res.StatusCode, body)
	return body, nil
}
