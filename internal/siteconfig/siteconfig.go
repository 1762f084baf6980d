// Package siteconfig holds the per-session snapshot of remote site
// configuration: theming, carousel content, and the store-enabled flag that
// gates the whole storefront behind a maintenance state.
package siteconfig

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Image is one carousel slide.
type Image struct {
	URL   string
	Title string
	Link  string
}

// Config is the site configuration snapshot.
type Config struct {
	PrimaryColor   string
	SecondaryColor string
	Theme          string
	CarouselImages []Image
	StoreEnabled   bool
}

// Defaults returns the configuration used until the remote fetch succeeds,
// and kept when it fails. The store starts enabled so a config outage never
// locks customers out.
func Defaults() Config {
	return Config{
		PrimaryColor:   "#E11D48",
		SecondaryColor: "#000000",
		Theme:          "Dark",
		StoreEnabled:   true,
	}
}

// Fetcher retrieves the site configuration from the remote API.
type Fetcher interface {
	SiteConfig(ctx context.Context) (*Config, error)
}

// Store is the lazily-initialized, read-only view of site configuration.
// The snapshot is fetched at most once per session; a failed fetch keeps
// the defaults and is never fatal.
type Store struct {
	fetcher Fetcher
	lg      *zap.Logger

	once sync.Once

	mu      sync.RWMutex
	cfg     Config
	loading bool
}

// NewStore returns a Store serving defaults until Load runs.
func NewStore(fetcher Fetcher, lg *zap.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		lg:      lg,
		cfg:     Defaults(),
		loading: true,
	}
}

// Load fetches the configuration once. Subsequent calls are no-ops, so it is
// safe to call from any entry point that needs the snapshot warm.
func (s *Store) Load(ctx context.Context) {
	s.once.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()

		cfg, err := s.fetcher.SiteConfig(ctx)
		if err != nil {
			s.lg.Warn("Site config fetch failed, keeping defaults", zap.Error(err))
			return
		}
		s.mu.Lock()
		s.cfg = *cfg
		s.mu.Unlock()
		s.lg.Info("Site config loaded",
			zap.String("theme", cfg.Theme),
			zap.Bool("store_enabled", cfg.StoreEnabled))
	})
}

// Current returns the latest snapshot.
func (s *Store) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Loading reports whether the initial fetch is still outstanding.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Maintenance reports whether the storefront must present its maintenance
// state and suppress normal functionality.
func (s *Store) Maintenance() bool {
	return !s.Current().StoreEnabled
}
