package runtimeconfig

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrBlobProviderUnknown = errors.New("sitekit config: blob provider is invalid")
var ErrBlobBucketRequired = errors.New("sitekit config: blob bucket is required for the s3 provider")
var ErrBentoCredentialsIncomplete = errors.New("sitekit config: bento credentials must be set together or not at all")
var ErrLoggingLevelInvalid = errors.New("sitekit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitekit config: logging format is invalid")
var ErrServerAddrRequired = errors.New("sitekit config: server address is required")

const passwordKey = "DOWNLOAD_PASSWORD"

// Config aggregates runtime settings for the download gate and its
// supporting services. Fields intentionally use simple types so host
// applications can extend them later.
type Config struct {
	Server    ServerConfig
	Downloads DownloadsConfig
	Blob      BlobConfig
	Bento     BentoConfig
	Sitemap   SitemapConfig
	Logging   LoggingConfig
}

// ServerConfig captures the HTTP listener and page branding.
type ServerConfig struct {
	Addr     string
	SiteName string
	LogoURL  string
}

// DownloadsConfig carries the accepted password set, primary first.
type DownloadsConfig struct {
	Passwords []string
}

// BlobConfig selects and configures the blob backend. Endpoint is only
// needed for S3-compatible stores such as R2 or MinIO.
type BlobConfig struct {
	Provider        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// BentoConfig holds the marketing API credentials. All three fields must
// be present for tracking to be enabled.
type BentoConfig struct {
	SiteUUID       string
	PublishableKey string
	SecretKey      string
}

// Enabled reports whether the credential set is complete.
func (c BentoConfig) Enabled() bool {
	return c.SiteUUID != "" && c.PublishableKey != "" && c.SecretKey != ""
}

func (c BentoConfig) partial() bool {
	any := c.SiteUUID != "" || c.PublishableKey != "" || c.SecretKey != ""
	return any && !c.Enabled()
}

// SitemapConfig configures the sitemap generator.
type SitemapConfig struct {
	BaseURL    string
	ContentDir string
	PagesDir   string
	OutputPath string
}

// LoggingConfig captures options for the gologger provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:     ":8080",
			SiteName: "Downloads",
		},
		Blob: BlobConfig{
			Provider: "memory",
			Region:   "auto",
		},
		Sitemap: SitemapConfig{
			ContentDir: "content",
			PagesDir:   "pages",
			OutputPath: "sitemap.xml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// FromEnviron builds a Config from a list of KEY=VALUE pairs as returned
// by os.Environ. Unknown keys are ignored. Password variables are
// collected from DOWNLOAD_PASSWORD plus every DOWNLOAD_PASSWORD_<suffix>
// variant; blank values are dropped and the primary key sorts first.
func FromEnviron(environ []string) Config {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[key] = value
	}

	cfg := DefaultConfig()

	if addr := env["SERVER_ADDR"]; addr != "" {
		cfg.Server.Addr = addr
	}
	if name := env["SITE_NAME"]; name != "" {
		cfg.Server.SiteName = name
	}
	cfg.Server.LogoURL = env["SITE_LOGO_URL"]

	cfg.Downloads.Passwords = collectPasswords(env)

	if provider := NormalizeBlobProvider(env["BLOB_PROVIDER"]); provider != "" {
		cfg.Blob.Provider = provider
	}
	cfg.Blob.Bucket = env["S3_BUCKET"]
	if region := env["S3_REGION"]; region != "" {
		cfg.Blob.Region = region
	}
	cfg.Blob.AccessKeyID = env["S3_ACCESS_KEY_ID"]
	cfg.Blob.SecretAccessKey = env["S3_SECRET_ACCESS_KEY"]
	cfg.Blob.Endpoint = env["S3_ENDPOINT"]
	if cfg.Blob.Provider == DefaultConfig().Blob.Provider && cfg.Blob.Bucket != "" {
		cfg.Blob.Provider = "s3"
	}

	cfg.Bento.SiteUUID = env["BENTO_SITE_UUID"]
	cfg.Bento.PublishableKey = env["BENTO_PUBLISHABLE_KEY"]
	cfg.Bento.SecretKey = env["BENTO_SECRET_KEY"]

	if base := env["SITE_BASE_URL"]; base != "" {
		cfg.Sitemap.BaseURL = base
	}
	if dir := env["CONTENT_DIR"]; dir != "" {
		cfg.Sitemap.ContentDir = dir
	}
	if dir := env["PAGES_DIR"]; dir != "" {
		cfg.Sitemap.PagesDir = dir
	}
	if out := env["SITEMAP_OUTPUT"]; out != "" {
		cfg.Sitemap.OutputPath = out
	}

	if level := env["LOG_LEVEL"]; level != "" {
		cfg.Logging.Level = level
	}
	if format := env["LOG_FORMAT"]; format != "" {
		cfg.Logging.Format = format
	}
	cfg.Logging.AddSource = env["LOG_ADD_SOURCE"] == "true" || env["LOG_ADD_SOURCE"] == "1"

	return cfg
}

func collectPasswords(env map[string]string) []string {
	var variants []string
	for key := range env {
		if strings.HasPrefix(key, passwordKey+"_") {
			variants = append(variants, key)
		}
	}
	sort.Strings(variants)

	keys := make([]string, 0, len(variants)+1)
	if _, ok := env[passwordKey]; ok {
		keys = append(keys, passwordKey)
	}
	keys = append(keys, variants...)

	passwords := make([]string, 0, len(keys))
	for _, key := range keys {
		if value := env[key]; value != "" {
			passwords = append(passwords, value)
		}
	}
	return passwords
}

func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	switch NormalizeBlobProvider(cfg.Blob.Provider) {
	case "s3":
		if strings.TrimSpace(cfg.Blob.Bucket) == "" {
			return ErrBlobBucketRequired
		}
	case "memory", "":
	default:
		return fmt.Errorf("%w: %s", ErrBlobProviderUnknown, cfg.Blob.Provider)
	}
	if cfg.Bento.partial() {
		return ErrBentoCredentialsIncomplete
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// NormalizeBlobProvider canonicalizes a blob provider name. Validate and the
// store constructor both rely on it so a provider cannot pass validation and
// then fall through to a different backend.
func NormalizeBlobProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

// Kept in sync with the formats gologger.NewProvider accepts.
func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "console", "json", "pretty":
		return true
	default:
		return false
	}
}
