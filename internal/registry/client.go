package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/domain/paper"
)

var (
	// ErrNetwork is returned when the build listing cannot be retrieved.
	ErrNetwork = errors.New("registry request failed")
	// ErrParse is returned when the build listing is malformed.
	ErrParse = errors.New("invalid registry response")
	// ErrDownload is returned when a build file cannot be downloaded.
	ErrDownload = errors.New("download failed")

	// errBadHTTPStatus is returned for any non-200 response.
	errBadHTTPStatus = errors.New("unexpected http status")
)

// Client talks to the build registry of one project.
type Client struct {
	// baseURL is the API root, e.g. https://api.papermc.io/v2.
	baseURL string
	// project is the registry project, e.g. "paper".
	project string
	// httpClient performs the requests.
	httpClient *http.Client

	// timeout bounds listing requests.
	timeout time.Duration
	// downloadTimeout bounds file downloads.
	downloadTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the timeout of listing requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithDownloadTimeout sets the timeout of file downloads.
func WithDownloadTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.downloadTimeout = timeout
		}
	}
}

// New creates a client for project at baseURL.
func New(baseURL, project string, opts ...Option) *Client {
	client := &Client{
		baseURL:         baseURL,
		project:         project,
		httpClient:      http.DefaultClient,
		timeout:         config.DefaultTimeout,
		downloadTimeout: config.DefaultDownloadTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// FetchBuilds returns the registry listing for version.
func (c *Client) FetchBuilds(ctx context.Context, version string) (*paper.Project, error) {
	endpoint, err := c.endpoint("projects", c.project, "versions", version, "builds")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	callCtx, cancel := c.callContext(ctx, c.timeout)
	defer cancel()

	response, err := c.get(callCtx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrNetwork, endpoint, err)
	}

	return decodeProject(body)
}

// Download returns the contents of fileName published for build.
func (c *Client) Download(ctx context.Context, version string, build int, fileName string) ([]byte, error) {
	endpoint, err := c.endpoint(
		"projects", c.project,
		"versions", version,
		"builds", strconv.Itoa(build),
		"downloads", fileName,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	callCtx, cancel := c.callContext(ctx, c.downloadTimeout)
	defer cancel()

	response, err := c.get(callCtx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrDownload, endpoint, err)
	}

	return data, nil
}

// endpoint joins path segments onto the base URL, escaping each segment.
func (c *Client) endpoint(segments ...string) (string, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	escaped := make([]string, 0, len(segments)+2)
	escaped = append(escaped, "/", baseURL.EscapedPath())

	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}

	// Use path.Join to normalize duplicate slashes when composing the URL path.
	joined := path.Join(escaped...)

	baseURL.Path, err = url.PathUnescape(joined)
	if err != nil {
		return "", err
	}

	baseURL.RawPath = joined

	return baseURL.String(), nil
}

// get issues a GET request and fails on any status other than 200.
// The caller owns the response body on success.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		_ = response.Body.Close()

		return nil, fmt.Errorf("%s, %s: %w", endpoint, response.Status, errBadHTTPStatus)
	}

	return response, nil
}

// callContext returns a context bounded by timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
