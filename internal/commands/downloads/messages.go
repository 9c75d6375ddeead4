package downloadscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const trackDownloadMessageType = "sitekit.downloads.track_download"

// TrackDownloadCommand records a completed gated download with the marketing
// API. It is dispatched fire-and-forget: validation or delivery failures are
// logged by the background runner and never reach the response path.
type TrackDownloadCommand struct {
	// Email is the address captured by the download form.
	Email string `json:"email"`
	// FilePath is the blob key the subscriber unlocked.
	FilePath string `json:"file_path"`
}

// Type implements command.Message.
func (TrackDownloadCommand) Type() string { return trackDownloadMessageType }

// Validate ensures the event carries a plausible email and a file path
// before handlers execute.
func (cmd TrackDownloadCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Email, validation.Required, is.EmailFormat),
		validation.Field(&cmd.FilePath, validation.Required),
	)
}
