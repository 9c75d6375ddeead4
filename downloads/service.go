// Package downloads implements the password-gated download flow: a shared
// secret and an email unlock a one-page landing that immediately triggers the
// actual byte transfer, while the captured email is forwarded to the
// marketing API in the background.
package downloads

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Notifier forwards a captured email and file path to the marketing API.
// Implementations are expected to be dispatched fire-and-forget.
type Notifier interface {
	TrackDownload(ctx context.Context, email, filePath string) error
}

// Service holds the per-process state of the gated download flow: the
// read-only secret set, the blob store, and the optional notifier. It keeps
// no per-request state and is safe for concurrent use.
type Service struct {
	secrets  []string
	store    interfaces.BlobStore
	notifier Notifier
	runner   interfaces.TaskRunner
	logger   interfaces.Logger
}

// Option customizes service construction.
type Option func(*Service)

// WithNotifier wires the marketing API notifier. When absent, notifications
// are skipped silently.
func WithNotifier(notifier Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

// WithRunner injects the background task runner used for notifications.
func WithRunner(runner interfaces.TaskRunner) Option {
	return func(s *Service) {
		if runner != nil {
			s.runner = runner
		}
	}
}

// WithLogger injects the service logger. Defaults to no-op.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the gated download service. Secrets are copied and
// blank entries dropped; the set is read-only afterwards.
func NewService(secrets []string, store interfaces.BlobStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logging.NoOp(),
	}
	for _, secret := range secrets {
		if secret != "" {
			s.secrets = append(s.secrets, secret)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether at least one valid password exists. When false
// every request must be answered with a configuration error.
func (s *Service) Configured() bool {
	return len(s.secrets) > 0
}

// SecretCount returns the number of configured passwords, for startup logs.
func (s *Service) SecretCount() int {
	return len(s.secrets)
}

// Authorize reports whether the submitted password matches any configured
// secret. Comparison is exact; an empty submission never matches.
func (s *Service) Authorize(password string) bool {
	if password == "" {
		return false
	}
	for _, secret := range s.secrets {
		if password == secret {
			return true
		}
	}
	return false
}

// Gate validates a form submission. It returns ErrNoPasswordsConfigured,
// ErrWrongPassword, or ErrEmailRequired so callers can map each rejection
// to its user-facing message. The password is checked before the email.
func (s *Service) Gate(password, email string) error {
	if !s.Configured() {
		return ErrNoPasswordsConfigured
	}
	if !s.Authorize(password) {
		return ErrWrongPassword
	}
	if email == "" {
		return ErrEmailRequired
	}
	return nil
}

// Fetch looks up the blob stored under key. Missing keys surface as
// interfaces.ErrBlobNotFound.
func (s *Service) Fetch(ctx context.Context, key string) (*interfaces.BlobObject, error) {
	if s.store == nil {
		return nil, ErrStoreRequired
	}
	return s.store.Get(ctx, key)
}

// QueueNotification schedules the marketing API call for a completed unlock
// and reports whether a task was actually scheduled. The response path never
// waits on the task; failures are logged by the runner and discarded. When
// no notifier is configured the call is skipped silently.
func (s *Service) QueueNotification(ctx context.Context, email, filePath string) bool {
	logger := logging.WithDownloadContext(s.logger, filePath, email)

	if s.notifier == nil {
		logger.Warn("downloads.notify.skipped", "reason", "notifier not configured")
		return false
	}
	if s.runner == nil {
		logger.Warn("downloads.notify.skipped", "reason", "task runner not configured")
		return false
	}

	logger.Debug("downloads.notify.scheduled")
	notifier := s.notifier
	s.runner.Go(ctx, "downloads.notify", func(taskCtx context.Context) error {
		return notifier.TrackDownload(taskCtx, email, filePath)
	})
	return true
}

// Filename extracts the attachment filename from a blob key: the final path
// segment, or "file" when the key ends in a separator.
func Filename(path string) string {
	segments := strings.Split(path, "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "file"
	}
	return name
}

// NormalizePath strips the leading slashes a URL path carries so it can be
// used as a blob key. An empty result means the index page was requested.
func NormalizePath(urlPath string) string {
	return strings.TrimLeft(urlPath, "/")
}
