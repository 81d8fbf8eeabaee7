// Package swagger acquires GS1 firstbase Swagger specs: download, on-disk
// caching, and decoding into the core schema model. The validation core never
// touches the network or the filesystem; it receives the already-materialized
// Schema from here.
package swagger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	firstbase "github.com/zdavatz/firstbase-validator"
)

// Endpoint describes one known firstbase Swagger endpoint.
type Endpoint struct {
	Key   string // Stable identifier, e.g. "product".
	URL   string
	Label string // Human label used in reports.
	Cache string // Cache file name under the fetcher's cache dir.
}

// Endpoints lists the two firstbase APIs every validation run checks against:
// the Product API a data recipient reads from, and the Catalogue Item API a
// data sender writes to.
var Endpoints = []Endpoint{
	{
		Key:   "product",
		URL:   "https://test-productapi-firstbase.gs1.ch/docs/v01/productApi",
		Label: "Product API (recipient)",
		Cache: ".swagger_cache_product.json",
	},
	{
		Key:   "catalogue",
		URL:   "https://test-webapi-firstbase.gs1.ch:5443/docs/v01/catalogueItemApi",
		Label: "Catalogue Item API (sender)",
		Cache: ".swagger_cache_catalogue.json",
	},
}

// Fetcher downloads and caches Swagger specs. The filesystem is abstracted so
// tests run against an in-memory fs.
type Fetcher struct {
	Client   *http.Client
	Fs       afero.Fs
	CacheDir string
	Logger   zerolog.Logger
}

// NewFetcher builds a Fetcher with the default HTTP client (30s timeout), the
// OS filesystem, and the global logger.
func NewFetcher(cacheDir string) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Fs:       afero.NewOsFs(),
		CacheDir: cacheDir,
		Logger:   log.Logger,
	}
}

// Fetch returns the schema for an endpoint, serving from the cache file when
// present. A cache file that no longer decodes is ignored and refetched.
func (f *Fetcher) Fetch(ctx context.Context, ep Endpoint) (firstbase.Schema, error) {
	cachePath := filepath.Join(f.CacheDir, ep.Cache)
	if data, err := afero.ReadFile(f.Fs, cachePath); err == nil {
		schema, err := Decode(data)
		if err == nil {
			return schema, nil
		}
		f.Logger.Warn().Str("cache", cachePath).Err(err).Msg("stale swagger cache, refetching")
	}

	f.Logger.Info().Str("label", ep.Label).Str("url", ep.URL).Msg("downloading swagger spec")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("swagger: build request for %s: %w", ep.URL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("swagger: fetch %s: %w", ep.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("swagger: fetch %s: unexpected status %s", ep.URL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("swagger: read %s: %w", ep.URL, err)
	}

	schema, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("swagger: decode %s: %w", ep.URL, err)
	}

	if err := afero.WriteFile(f.Fs, cachePath, body, 0o644); err != nil {
		// A failed cache write only costs the next run a download.
		f.Logger.Warn().Str("cache", cachePath).Err(err).Msg("failed to write swagger cache")
	} else {
		f.Logger.Info().Str("cache", cachePath).Int("definitions", len(schema)).Msg("cached swagger spec")
	}
	return schema, nil
}

// DropCaches removes every endpoint's cache file so the next Fetch downloads
// a fresh spec. Missing files are not an error.
func (f *Fetcher) DropCaches() error {
	for _, ep := range Endpoints {
		cachePath := filepath.Join(f.CacheDir, ep.Cache)
		if err := f.Fs.Remove(cachePath); err == nil {
			f.Logger.Info().Str("cache", cachePath).Msg("dropped swagger cache")
		}
	}
	return nil
}
