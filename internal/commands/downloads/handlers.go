package downloadscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const trackDownloadOperation = "downloads.track_download"

// ErrTrackerMissing is returned when a handler is constructed without a
// marketing API client.
var ErrTrackerMissing = errors.New("downloads command: tracker is not configured")

// DownloadTracker is the outbound contract implemented by the Bento client.
type DownloadTracker interface {
	TrackDownload(ctx context.Context, email, filePath string) error
}

var _ command.Commander[TrackDownloadCommand] = (*TrackDownloadHandler)(nil)

// TrackDownloadHandler submits download events through the shared command
// handler foundation so validation, timeouts, and error tagging behave the
// same as every other sitekit command.
type TrackDownloadHandler struct {
	inner *commands.Handler[TrackDownloadCommand]
}

// NewTrackDownloadHandler creates a handler bound to the supplied tracker.
func NewTrackDownloadHandler(tracker DownloadTracker, logger interfaces.Logger, opts ...commands.HandlerOption[TrackDownloadCommand]) *TrackDownloadHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg TrackDownloadCommand) error {
		if tracker == nil {
			return ErrTrackerMissing
		}
		if err := tracker.TrackDownload(ctx, msg.Email, msg.FilePath); err != nil {
			return err
		}
		logging.WithDownloadContext(baseLogger, msg.FilePath, msg.Email).
			Info("downloads.command.track_download.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[TrackDownloadCommand]{
		commands.WithLogger[TrackDownloadCommand](baseLogger),
		commands.WithOperation[TrackDownloadCommand](trackDownloadOperation),
	}, opts...)

	return &TrackDownloadHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander.
func (h *TrackDownloadHandler) Execute(ctx context.Context, msg TrackDownloadCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Notifier adapts the handler to the downloads.Notifier contract so the
// gated download service can dispatch events without knowing about commands.
type Notifier struct {
	handler command.Commander[TrackDownloadCommand]
}

// NewNotifier wraps a commander for use as a download notifier.
func NewNotifier(handler command.Commander[TrackDownloadCommand]) *Notifier {
	return &Notifier{handler: handler}
}

// TrackDownload dispatches a TrackDownloadCommand.
func (n *Notifier) TrackDownload(ctx context.Context, email, filePath string) error {
	if n == nil || n.handler == nil {
		return ErrTrackerMissing
	}
	return n.handler.Execute(ctx, TrackDownloadCommand{
		Email:    email,
		FilePath: filePath,
	})
}
