package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const (
	rootModule      = "sitekit"
	smartdocModule  = "sitekit.smartdoc"
	downloadsModule = "sitekit.downloads"
	bentoModule     = "sitekit.bento"
	tasksModule     = "sitekit.tasks"
	sitemapModule   = "sitekit.sitemap"
	httpModule      = "sitekit.http"
)

const (
	fieldDownloadPath  = "file_path"
	fieldDownloadEmail = "email"
	fieldTaskName      = "task"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SmartdocLogger returns the logger namespace reserved for document rendering.
func SmartdocLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, smartdocModule)
}

// DownloadsLogger returns the logger namespace reserved for the gated
// download service.
func DownloadsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, downloadsModule)
}

// BentoLogger returns the logger namespace reserved for the marketing API client.
func BentoLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, bentoModule)
}

// TasksLogger returns the logger namespace reserved for background tasks.
func TasksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tasksModule)
}

// SitemapLogger returns the logger namespace reserved for sitemap scanning.
func SitemapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sitemapModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithDownloadContext enriches the provided logger with common download
// fields such as the requested file path and the submitted email. Empty
// values are ignored.
func WithDownloadContext(logger interfaces.Logger, path, email string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDownloadPath] = trimmed
	}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		fields[fieldDownloadEmail] = trimmed
	}
	return WithFields(logger, fields)
}

// WithTaskContext annotates the logger with the background task name.
func WithTaskContext(logger interfaces.Logger, name string) interfaces.Logger {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return WithFields(logger, map[string]any{fieldTaskName: trimmed})
	}
	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
