package downloadscmd

import (
	"context"
	"errors"
	"testing"
)

type recordingTracker struct {
	email    string
	filePath string
	calls    int
	err      error
}

func (r *recordingTracker) TrackDownload(_ context.Context, email, filePath string) error {
	r.calls++
	r.email = email
	r.filePath = filePath
	return r.err
}

func TestTrackDownloadCommandValidation(t *testing.T) {
	valid := TrackDownloadCommand{Email: "reader@example.com", FilePath: "issues/a.pdf"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}

	cases := []TrackDownloadCommand{
		{},
		{Email: "reader@example.com"},
		{FilePath: "issues/a.pdf"},
		{Email: "not-an-email", FilePath: "issues/a.pdf"},
	}
	for _, cmd := range cases {
		if err := cmd.Validate(); err == nil {
			t.Fatalf("command %+v should fail validation", cmd)
		}
	}
}

func TestTrackDownloadHandlerExecutes(t *testing.T) {
	tracker := &recordingTracker{}
	handler := NewTrackDownloadHandler(tracker, nil)

	cmd := TrackDownloadCommand{Email: "reader@example.com", FilePath: "issues/a.pdf"}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if tracker.calls != 1 {
		t.Fatalf("expected exactly one tracker call, got %d", tracker.calls)
	}
	if tracker.email != "reader@example.com" || tracker.filePath != "issues/a.pdf" {
		t.Fatalf("tracker received wrong arguments: %+v", tracker)
	}
}

func TestTrackDownloadHandlerRejectsInvalidMessage(t *testing.T) {
	tracker := &recordingTracker{}
	handler := NewTrackDownloadHandler(tracker, nil)

	err := handler.Execute(context.Background(), TrackDownloadCommand{Email: "nope", FilePath: "a.pdf"})
	if err == nil {
		t.Fatal("invalid message should be rejected")
	}
	if tracker.calls != 0 {
		t.Fatal("tracker must not run for invalid messages")
	}
}

func TestTrackDownloadHandlerPropagatesTrackerError(t *testing.T) {
	tracker := &recordingTracker{err: errors.New("api down")}
	handler := NewTrackDownloadHandler(tracker, nil)

	cmd := TrackDownloadCommand{Email: "reader@example.com", FilePath: "a.pdf"}
	if err := handler.Execute(context.Background(), cmd); err == nil {
		t.Fatal("tracker failures should propagate to the background runner")
	}
}

func TestTrackDownloadHandlerMissingTracker(t *testing.T) {
	handler := NewTrackDownloadHandler(nil, nil)

	cmd := TrackDownloadCommand{Email: "reader@example.com", FilePath: "a.pdf"}
	if err := handler.Execute(context.Background(), cmd); err == nil {
		t.Fatal("missing tracker should error")
	}
}

func TestNotifierDispatches(t *testing.T) {
	tracker := &recordingTracker{}
	notifier := NewNotifier(NewTrackDownloadHandler(tracker, nil))

	if err := notifier.TrackDownload(context.Background(), "reader@example.com", "a.pdf"); err != nil {
		t.Fatalf("TrackDownload: %v", err)
	}
	if tracker.calls != 1 {
		t.Fatalf("expected one call, got %d", tracker.calls)
	}
}
