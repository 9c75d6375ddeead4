package sitekit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-sitekit/downloads"
	"github.com/goliatone/go-sitekit/internal/bento"
	"github.com/goliatone/go-sitekit/internal/blobstore"
	downloadscmd "github.com/goliatone/go-sitekit/internal/commands/downloads"
	"github.com/goliatone/go-sitekit/internal/httpserver"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/logging/gologger"
	"github.com/goliatone/go-sitekit/internal/runtimeconfig"
	"github.com/goliatone/go-sitekit/internal/tasks"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/goliatone/go-sitekit/sitemap"
)

// DownloadService exports the gated download service for host applications.
type DownloadService = downloads.Service

// Notifier exports the outbound notification contract.
type Notifier = downloads.Notifier

// BlobStore exports the blob backend contract.
type BlobStore = interfaces.BlobStore

// ErrBlobNotFound is returned by blob stores for unknown keys.
var ErrBlobNotFound = interfaces.ErrBlobNotFound

// Module is the top level sitekit runtime facade. It wires the blob store,
// the marketing API client, the background task runner, and the HTTP gate
// from a single Config.
type Module struct {
	cfg      runtimeconfig.Config
	provider interfaces.LoggerProvider
	store    interfaces.BlobStore
	notifier downloads.Notifier
	runner   *tasks.Runner
	service  *downloads.Service
	handler  http.Handler
}

type ModuleOption func(*Module)

// WithLoggerProvider overrides the default gologger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) ModuleOption {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithBlobStore overrides the store selected by Config.Blob.
func WithBlobStore(store interfaces.BlobStore) ModuleOption {
	return func(m *Module) {
		if store != nil {
			m.store = store
		}
	}
}

// WithNotifier overrides the Bento-backed notifier.
func WithNotifier(notifier downloads.Notifier) ModuleOption {
	return func(m *Module) {
		if notifier != nil {
			m.notifier = notifier
		}
	}
}

// New constructs the sitekit runtime from the provided configuration.
func New(ctx context.Context, cfg Config, opts ...ModuleOption) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.store == nil {
		store, err := buildBlobStore(ctx, cfg.Blob)
		if err != nil {
			return nil, err
		}
		m.store = store
	}

	if m.notifier == nil && cfg.Bento.Enabled() {
		client := bento.New(bento.Config{
			SiteUUID:       cfg.Bento.SiteUUID,
			PublishableKey: cfg.Bento.PublishableKey,
			SecretKey:      cfg.Bento.SecretKey,
		}, bento.WithLogger(logging.BentoLogger(m.provider)))

		handler := downloadscmd.NewTrackDownloadHandler(client, logging.DownloadsLogger(m.provider))
		m.notifier = downloadscmd.NewNotifier(handler)
	}

	m.runner = tasks.NewRunner(tasks.WithLogger(logging.TasksLogger(m.provider)))

	serviceOpts := []downloads.Option{
		downloads.WithRunner(m.runner),
		downloads.WithLogger(logging.DownloadsLogger(m.provider)),
	}
	if m.notifier != nil {
		serviceOpts = append(serviceOpts, downloads.WithNotifier(m.notifier))
	}
	m.service = downloads.NewService(cfg.Downloads.Passwords, m.store, serviceOpts...)

	server := httpserver.New(m.service,
		httpserver.WithLogger(logging.HTTPLogger(m.provider)),
		httpserver.WithBranding(cfg.Server.SiteName, cfg.Server.LogoURL),
	)
	m.handler = server.Routes()

	return m, nil
}

func buildBlobStore(ctx context.Context, cfg runtimeconfig.BlobConfig) (interfaces.BlobStore, error) {
	switch runtimeconfig.NormalizeBlobProvider(cfg.Provider) {
	case "s3":
		return blobstore.NewS3(ctx, blobstore.S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			BaseEndpoint:    cfg.Endpoint,
		})
	case "", "memory":
		return blobstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrBlobProviderUnknown, cfg.Provider)
	}
}

// Downloads returns the gated download service.
func (m *Module) Downloads() *downloads.Service {
	return m.service
}

// Handler returns the HTTP handler serving the download gate.
func (m *Module) Handler() http.Handler {
	return m.handler
}

// BlobStore returns the configured blob backend.
func (m *Module) BlobStore() interfaces.BlobStore {
	return m.store
}

// Sitemap builds a sitemap generator bound to the configured site.
func (m *Module) Sitemap() *sitemap.Generator {
	return sitemap.New(m.cfg.Sitemap.BaseURL,
		sitemap.WithContentDir(m.cfg.Sitemap.ContentDir),
		sitemap.WithPagesDir(m.cfg.Sitemap.PagesDir),
		sitemap.WithLogger(logging.SitemapLogger(m.provider)),
	)
}

// Shutdown drains background tasks. The context bounds how long queued
// notifications may keep running.
func (m *Module) Shutdown(ctx context.Context) error {
	return m.runner.Wait(ctx)
}
