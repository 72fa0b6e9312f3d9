// Package catalog resolves the library version manifest the dependency
// generator works from. Resolution order is remote endpoint, then local
// cache, then the bundled default; a network failure is never fatal.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/fernvale/modremap/internal/filesystem"
	"golang.org/x/mod/semver"
)

// DefaultURL is the version manifest endpoint used when gradle.properties
// does not override it.
const DefaultURL = "https://meta.fernvale.dev/v1/versions"

// DefaultTTL is how long a cached manifest is considered fresh.
const DefaultTTL = 24 * time.Hour

// Library is one resolvable dependency coordinate.
type Library struct {
	Name     string   `json:"name"`
	ModID    string   `json:"modId"`
	Versions []string `json:"versions"`
}

// Manifest is the full version catalog.
type Manifest struct {
	SchemaVersion int       `json:"schemaVersion"`
	Libraries     []Library `json:"libraries"`
}

// Source reports where a resolved manifest came from.
type Source string

const (
	SourceRemote  Source = "remote"
	SourceCache   Source = "cache"
	SourceBundled Source = "bundled"
)

// cacheRecord wraps the manifest with the URL it was fetched from, so a
// URL change invalidates the cache instead of serving stale data for the
// wrong endpoint.
type cacheRecord struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
	Manifest  *Manifest `json:"manifest"`
}

// Client resolves manifests. It is scoped to a single run and holds no
// global state; the cache lives on disk under the project's state dir.
type Client struct {
	fs         filesystem.FileSystem
	url        string
	cachePath  string
	ttl        time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTTL overrides the cache freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithHTTPClient overrides the HTTP client used for remote fetches.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Client for the given endpoint and cache location.
func NewClient(fsys filesystem.FileSystem, url, cachePath string, options ...Option) *Client {
	c := &Client{
		fs:         fsys,
		url:        url,
		cachePath:  cachePath,
		ttl:        DefaultTTL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Resolve returns the best available manifest. With refresh set the cache
// freshness check is skipped and the remote is always tried first.
func (c *Client) Resolve(ctx context.Context, refresh bool) (*Manifest, Source, error) {
	record := c.readCache()

	if !refresh && record != nil && c.now().Sub(record.FetchedAt) < c.ttl {
		return record.Manifest, SourceCache, nil
	}

	manifest, err := c.fetch(ctx)
	if err == nil {
		c.writeCache(manifest)
		return manifest, SourceRemote, nil
	}

	// Remote failed: a stale cache beats the bundled default.
	if record != nil {
		return record.Manifest, SourceCache, nil
	}

	bundled, berr := bundledManifest()
	if berr != nil {
		return nil, "", fmt.Errorf("remote fetch failed (%w) and bundled manifest unavailable: %v", err, berr)
	}
	return bundled, SourceBundled, nil
}

// Latest returns the highest semantic version a library offers, or false
// when the library is unknown or has no parseable versions.
func (m *Manifest) Latest(name string) (string, bool) {
	for _, lib := range m.Libraries {
		if lib.Name != name {
			continue
		}

		versions := make([]string, 0, len(lib.Versions))
		for _, v := range lib.Versions {
			if semver.IsValid(canonical(v)) {
				versions = append(versions, v)
			}
		}
		if len(versions) == 0 {
			return "", false
		}

		sort.Slice(versions, func(i, j int) bool {
			return semver.Compare(canonical(versions[i]), canonical(versions[j])) < 0
		})
		return versions[len(versions)-1], true
	}
	return "", false
}

// canonical adds the "v" prefix semver.Compare requires; manifest entries
// conventionally omit it.
func canonical(version string) string {
	if len(version) > 0 && version[0] == 'v' {
		return version
	}
	return "v" + version
}

func (c *Client) fetch(ctx context.Context) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest body: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}

// readCache returns nil for a missing, corrupt, or wrong-URL record.
func (c *Client) readCache() *cacheRecord {
	if !c.fs.Exists(c.cachePath) {
		return nil
	}

	data, err := c.fs.ReadFile(c.cachePath)
	if err != nil {
		return nil
	}

	var record cacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil
	}
	if record.URL != c.url || record.Manifest == nil {
		return nil
	}
	return &record
}

func (c *Client) writeCache(manifest *Manifest) {
	record := cacheRecord{URL: c.url, FetchedAt: c.now(), Manifest: manifest}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return
	}

	// Cache writes are best-effort; the next run just refetches.
	if err := c.fs.MkdirAll(dirOf(c.cachePath), 0755); err != nil {
		return
	}
	_ = c.fs.WriteFile(c.cachePath, data, 0644)
}
