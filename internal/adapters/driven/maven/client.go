package maven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/exclint/internal/logger"
)

const (
	// DefaultRepository is Maven Central.
	DefaultRepository = "https://repo.maven.apache.org/maven2"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPOMCacheSize is the number of parsed POMs kept in memory.
	DefaultPOMCacheSize = 4096

	// MaxRetries is the maximum number of retries of a throttled request.
	MaxRetries = 3

	// UserAgent identifies exclint to repositories.
	UserAgent = "exclint"

	fileScheme = "file://"
)

// Options configures a Client.
type Options struct {
	// Repositories are base URLs tried in order. Empty means DefaultRepository.
	Repositories []string

	// Token is sent as a bearer token when set.
	Token string

	// RequestsPerSecond throttles requests. Zero means DefaultRequestsPerSecond,
	// a negative value disables throttling.
	RequestsPerSecond float64

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport. Used by tests.
	HTTPClient *http.Client

	// CacheSize bounds the POM memo. Zero means DefaultPOMCacheSize.
	CacheSize int
}

// Client fetches POMs from Maven repositories.
// It is safe for concurrent use.
type Client struct {
	repositories []string
	http         *http.Client
	limiter      *RateLimiter
	poms         *lru.Cache[string, *POM]
}

// NewClient creates a repository client.
func NewClient(opts Options) (*Client, error) {
	repos := make([]string, 0, len(opts.Repositories))
	for _, r := range opts.Repositories {
		if r = strings.TrimRight(strings.TrimSpace(r), "/"); r != "" {
			repos = append(repos, r)
		}
	}
	if len(repos) == 0 {
		repos = []string{DefaultRepository}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = timeout
	}

	rps := opts.RequestsPerSecond
	if rps == 0 {
		rps = DefaultRequestsPerSecond
	}

	size := opts.CacheSize
	if size <= 0 {
		size = DefaultPOMCacheSize
	}
	poms, err := lru.New[string, *POM](size)
	if err != nil {
		return nil, fmt.Errorf("create pom cache: %w", err)
	}

	return &Client{
		repositories: repos,
		http:         httpClient,
		limiter:      NewRateLimiter(rps),
		poms:         poms,
	}, nil
}

// Repositories returns the repository base URLs in lookup order.
func (c *Client) Repositories() []string {
	return append([]string(nil), c.repositories...)
}

// RateLimiter returns the client's rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// FetchPOM returns the parsed POM of groupID:artifactID:version from the first
// repository that has it.
func (c *Client) FetchPOM(ctx context.Context, groupID, artifactID, version string) (*POM, error) {
	key := groupID + ":" + artifactID + ":" + version
	if pom, ok := c.poms.Get(key); ok {
		return pom, nil
	}

	rel := pomPath(groupID, artifactID, version)
	for _, repo := range c.repositories {
		pom, err := c.fetchFrom(ctx, repo, rel)
		if err == nil {
			c.poms.Add(key, pom)
			return pom, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
		logger.Debug("%s not found in %s", key, repo)
	}
	return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, key)
}

func (c *Client) fetchFrom(ctx context.Context, repo, rel string) (*POM, error) {
	if dir, ok := strings.CutPrefix(repo, fileScheme); ok {
		return readLocalPOM(filepath.Join(dir, filepath.FromSlash(rel)))
	}

	url := repo + "/" + rel
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
		pom, err := c.get(ctx, url)
		if IsRateLimited(err) && attempt < MaxRetries {
			logger.Debug("Throttled by %s, retrying", repo)
			continue
		}
		return pom, err
	}
}

func (c *Client) get(ctx context.Context, url string) (*POM, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")
	req.Header.Set("User-Agent", UserAgent)

	logger.Debug("GET %s", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := c.limiter.CheckResponse(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	pom, err := ParsePOM(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return pom, nil
}

func readLocalPOM(path string) (*POM, error) {
	pom, err := ReadProjectFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &StatusError{StatusCode: http.StatusNotFound, URL: fileScheme + path}
	}
	return pom, err
}

// pomPath returns the Maven 2 layout path of a POM.
func pomPath(groupID, artifactID, version string) string {
	return strings.ReplaceAll(groupID, ".", "/") + "/" + artifactID + "/" + version + "/" +
		artifactID + "-" + version + ".pom"
}
