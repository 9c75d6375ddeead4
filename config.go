package sitekit

import (
	"os"

	"github.com/goliatone/go-sitekit/internal/runtimeconfig"
)

var (
	ErrBlobProviderUnknown        = runtimeconfig.ErrBlobProviderUnknown
	ErrBlobBucketRequired         = runtimeconfig.ErrBlobBucketRequired
	ErrBentoCredentialsIncomplete = runtimeconfig.ErrBentoCredentialsIncomplete
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrServerAddrRequired         = runtimeconfig.ErrServerAddrRequired
)

type (
	Config          = runtimeconfig.Config
	ServerConfig    = runtimeconfig.ServerConfig
	DownloadsConfig = runtimeconfig.DownloadsConfig
	BlobConfig      = runtimeconfig.BlobConfig
	BentoConfig     = runtimeconfig.BentoConfig
	SitemapConfig   = runtimeconfig.SitemapConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv loads configuration from the process environment.
func ConfigFromEnv() Config {
	return runtimeconfig.FromEnviron(os.Environ())
}

// ConfigFromEnviron loads configuration from an explicit KEY=VALUE list.
func ConfigFromEnviron(environ []string) Config {
	return runtimeconfig.FromEnviron(environ)
}
