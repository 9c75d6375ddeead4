package bento

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testConfig() Config {
	return Config{
		SiteUUID:       "site-123",
		PublishableKey: "pub",
		SecretKey:      "sec",
	}
}

func TestConfigEnabled(t *testing.T) {
	if !testConfig().Enabled() {
		t.Fatal("complete config should be enabled")
	}

	partial := testConfig()
	partial.SecretKey = ""
	if partial.Enabled() {
		t.Fatal("config with a missing credential must be disabled")
	}
	if (Config{}).Enabled() {
		t.Fatal("empty config must be disabled")
	}
}

func TestTrackDownload(t *testing.T) {
	var (
		gotPath    string
		gotAuth    string
		gotUA      string
		gotPayload batchEventsPayload
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":1}`))
	}))
	defer server.Close()

	client := New(testConfig(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	if err := client.TrackDownload(context.Background(), "reader@example.com", "issues/2026-01.pdf"); err != nil {
		t.Fatalf("TrackDownload: %v", err)
	}

	if gotPath != "/batch/events" {
		t.Fatalf("endpoint mismatch: %q", gotPath)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("pub:sec"))
	if gotAuth != wantAuth {
		t.Fatalf("auth header mismatch: got %q want %q", gotAuth, wantAuth)
	}
	if gotUA == "" {
		t.Fatal("user agent header missing")
	}

	if gotPayload.SiteUUID != "site-123" {
		t.Fatalf("site uuid mismatch: %q", gotPayload.SiteUUID)
	}
	if len(gotPayload.Events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(gotPayload.Events))
	}
	evt := gotPayload.Events[0]
	if evt.Email != "reader@example.com" || evt.Type != "$direct_download" {
		t.Fatalf("event mismatch: %+v", evt)
	}
	if evt.Details["file_path"] != "issues/2026-01.pdf" {
		t.Fatalf("event details mismatch: %+v", evt.Details)
	}
}

func TestTrackDownloadAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid site", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := New(testConfig(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	if err := client.TrackDownload(context.Background(), "reader@example.com", "a.pdf"); err == nil {
		t.Fatal("non-2xx response should surface as an error")
	}
}

func TestTrackDownloadMissingCredentials(t *testing.T) {
	client := New(Config{})
	if err := client.TrackDownload(context.Background(), "reader@example.com", "a.pdf"); err == nil {
		t.Fatal("missing credentials should error")
	}
}

func TestTrackDownloadToleratesNonJSONSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := New(testConfig(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	if err := client.TrackDownload(context.Background(), "reader@example.com", "a.pdf"); err != nil {
		t.Fatalf("2xx with a non-JSON body should still succeed: %v", err)
	}
}
