package sitekit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-sitekit/internal/blobstore"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Blob.Provider = "s3"

	if _, err := New(context.Background(), cfg); !errors.Is(err, ErrBlobBucketRequired) {
		t.Fatalf("expected ErrBlobBucketRequired, got %v", err)
	}
}

func TestModuleBuildsS3StoreForAnyProviderCasing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Blob.Provider = "S3"
	cfg.Blob.Bucket = "magazine"
	cfg.Blob.AccessKeyID = "akid"
	cfg.Blob.SecretAccessKey = "skey"

	module, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok := module.BlobStore().(*blobstore.S3Store); !ok {
		t.Fatalf("store = %T, want *blobstore.S3Store", module.BlobStore())
	}
}

func TestModuleServesDownloadGate(t *testing.T) {
	store := blobstore.NewMemory()
	store.Put("report.pdf", []byte("bytes"), "application/pdf")

	cfg := DefaultConfig()
	cfg.Downloads.Passwords = []string{"s3cret"}

	module, err := New(context.Background(), cfg, WithBlobStore(store))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report.pdf?download=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "bytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

type countingNotifier struct {
	calls atomic.Int64
}

func (n *countingNotifier) TrackDownload(context.Context, string, string) error {
	n.calls.Add(1)
	return nil
}

func TestModuleUsesInjectedNotifier(t *testing.T) {
	store := blobstore.NewMemory()
	store.Put("report.pdf", []byte("bytes"), "application/pdf")

	cfg := DefaultConfig()
	cfg.Downloads.Passwords = []string{"s3cret"}

	notifier := &countingNotifier{}
	module, err := New(context.Background(), cfg, WithBlobStore(store), WithNotifier(notifier))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	form := url.Values{"password": {"s3cret"}, "email": {"a@b.com"}}
	req := httptest.NewRequest(http.MethodPost, "/report.pdf", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	module.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := module.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if got := notifier.calls.Load(); got != 1 {
		t.Fatalf("notifier ran %d times, want 1", got)
	}
}
