package shell

import (
	"context"
	"io"
	"net/http"

	"github.com/smarty/mcinstall/contracts"
)

const (
	plainUserAgent = "curl/7.79.1"
	plainAccept    = "*/*"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPFetcher reads the entire body of a GET request into memory.
type HTTPFetcher struct {
	client    HTTPClient
	userAgent string
	accept    string
}

type FetcherOption func(*HTTPFetcher)

func WithUserAgent(userAgent string) FetcherOption {
	return func(this *HTTPFetcher) { this.userAgent = userAgent }
}

// WithPlainHeaders presents the fetcher as a generic command-line client,
// which the asset index host expects.
func WithPlainHeaders() FetcherOption {
	return func(this *HTTPFetcher) {
		this.userAgent = plainUserAgent
		this.accept = plainAccept
	}
}

func NewHTTPFetcher(client HTTPClient, options ...FetcherOption) *HTTPFetcher {
	this := &HTTPFetcher{client: client, userAgent: "mcinstall"}
	for _, option := range options {
		option(this)
	}
	return this
}

func (this *HTTPFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, &contracts.FetchError{URL: address, Err: err}
	}
	request.Header.Set("User-Agent", this.userAgent)
	if this.accept != "" {
		request.Header.Set("Accept", this.accept)
	}

	response, err := this.client.Do(request)
	if err != nil {
		return nil, &contracts.FetchError{URL: address, Err: err}
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, &contracts.FetchError{URL: address, StatusCode: response.StatusCode, Status: response.Status}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &contracts.FetchError{URL: address, Err: err}
	}
	return body, nil
}
