package sitemap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func fixtureSite(t *testing.T) (contentDir, pagesDir string) {
	t.Helper()
	root := t.TempDir()
	contentDir = filepath.Join(root, "content")
	pagesDir = filepath.Join(root, "pages")

	writeFile(t, filepath.Join(contentDir, "blog", "first-post.md"), `---
title: First
slug: first
updated_at: 2026-03-01T10:00:00Z
pubDate: 2026-01-01
---
Body.`)

	writeFile(t, filepath.Join(contentDir, "blog", "Second Post.md"), `---
title: Second
pubDate: 2026-02-15
---
Body.`)

	writeFile(t, filepath.Join(contentDir, "article", "guide.md"), `---
title: Guide
---
Body.`)

	writeFile(t, filepath.Join(pagesDir, "index.html"), "<html></html>")
	writeFile(t, filepath.Join(pagesDir, "about.html"), "<html></html>")
	writeFile(t, filepath.Join(pagesDir, "legal", "privacy.html"), "<html></html>")

	return contentDir, pagesDir
}

func newFixtureGenerator(t *testing.T) *Generator {
	contentDir, pagesDir := fixtureSite(t)
	return New("https://mediapath.eu",
		WithContentDir(contentDir),
		WithPagesDir(pagesDir),
	)
}

func TestLastModIndexPrefersFrontmatterDates(t *testing.T) {
	g := newFixtureGenerator(t)

	index, err := g.LastModIndex()
	if err != nil {
		t.Fatalf("LastModIndex: %v", err)
	}

	got, ok := index["/blog/first/"]
	if !ok {
		t.Fatalf("missing /blog/first/ in %v", index)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("lastmod = %v, want updated_at %v", got, want)
	}

	got, ok = index["/blog/second-post/"]
	if !ok {
		t.Fatalf("missing slugified route in %v", index)
	}
	want = time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("lastmod = %v, want pubDate %v", got, want)
	}
}

func TestLastModIndexRegistersBothSlashVariants(t *testing.T) {
	g := newFixtureGenerator(t)

	index, err := g.LastModIndex()
	if err != nil {
		t.Fatalf("LastModIndex: %v", err)
	}

	bare, barePresent := index["/blog/first"]
	slashed, slashPresent := index["/blog/first/"]
	if !barePresent || !slashPresent {
		t.Fatal("collection routes should register with and without trailing slash")
	}
	if !bare.Equal(slashed) {
		t.Fatal("both route variants should share one date")
	}
}

func TestLastModIndexFallsBackToMtime(t *testing.T) {
	g := newFixtureGenerator(t)

	index, err := g.LastModIndex()
	if err != nil {
		t.Fatalf("LastModIndex: %v", err)
	}

	got, ok := index["/article/guide/"]
	if !ok {
		t.Fatalf("missing /article/guide/ in %v", index)
	}
	if time.Since(got) > time.Minute {
		t.Fatalf("mtime fallback looks wrong: %v", got)
	}
}

func TestLastModIndexMapsPageRoutes(t *testing.T) {
	g := newFixtureGenerator(t)

	index, err := g.LastModIndex()
	if err != nil {
		t.Fatalf("LastModIndex: %v", err)
	}

	for _, route := range []string{"/", "/about/", "/legal/privacy/"} {
		if _, ok := index[route]; !ok {
			t.Fatalf("missing page route %s in %v", route, index)
		}
	}
}

func TestLastModIndexMissingPagesDirIsNotFatal(t *testing.T) {
	contentDir, _ := fixtureSite(t)
	g := New("https://mediapath.eu",
		WithContentDir(contentDir),
		WithPagesDir(filepath.Join(t.TempDir(), "does-not-exist")),
	)

	if _, err := g.LastModIndex(); err != nil {
		t.Fatalf("missing pages dir should be tolerated, got %v", err)
	}
}

func TestBuildEmitsSortedTrailingSlashRoutes(t *testing.T) {
	g := newFixtureGenerator(t)

	entries, err := g.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i, entry := range entries {
		if !strings.HasSuffix(entry.Loc, "/") {
			t.Fatalf("entry %q should end with a slash", entry.Loc)
		}
		if !strings.HasPrefix(entry.Loc, "https://mediapath.eu/") {
			t.Fatalf("entry %q should carry the base URL", entry.Loc)
		}
		if entry.ChangeFreq != "weekly" || entry.Priority != "0.7" {
			t.Fatalf("entry %+v missing defaults", entry)
		}
		if i > 0 && entries[i-1].Loc > entry.Loc {
			t.Fatalf("entries not sorted: %q before %q", entries[i-1].Loc, entry.Loc)
		}
	}
}

func TestWriteToRendersUrlset(t *testing.T) {
	g := newFixtureGenerator(t)

	var buf bytes.Buffer
	if err := g.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Fatalf("missing urlset element: %s", out)
	}
	if !strings.Contains(out, "<loc>https://mediapath.eu/blog/first/</loc>") {
		t.Fatalf("missing blog entry: %s", out)
	}
	if !strings.Contains(out, "<lastmod>2026-03-01T10:00:00Z</lastmod>") {
		t.Fatalf("missing lastmod: %s", out)
	}
}

func TestEnsureTrailingSlash(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/blog/first", "/blog/first/"},
		{"/blog/first/", "/blog/first/"},
		{"/files/report.pdf", "/files/report.pdf"},
		{"/v1.2", "/v1.2"},
		{"", "/"},
	}
	for _, tc := range cases {
		if got := EnsureTrailingSlash(tc.in); got != tc.want {
			t.Fatalf("EnsureTrailingSlash(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
