package sitemap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
)

type postEnvelope struct {
	Slug      string `yaml:"slug"`
	UpdatedAt string `yaml:"updated_at"`
	PubDate   string `yaml:"pubDate"`
}

// LastModIndex maps route paths to last-modified dates. Collection routes
// are stored both with and without the trailing slash; static page routes
// always carry one. Collection dates prefer frontmatter updated_at, then
// pubDate, then the file mtime. A page route never shadows a collection
// route that already claimed the same path.
func (g *Generator) LastModIndex() (map[string]time.Time, error) {
	index := make(map[string]time.Time)

	for _, collection := range g.collections {
		if err := g.scanCollection(index, collection); err != nil {
			return nil, err
		}
	}

	if err := g.scanPages(index); err != nil {
		return nil, err
	}

	return index, nil
}

func (g *Generator) scanCollection(index map[string]time.Time, collection string) error {
	pattern := filepath.Join(g.contentDir, collection, "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("sitemap: glob %s: %w", pattern, err)
	}

	for _, file := range files {
		lastMod, postSlug, err := g.readPost(file)
		if err != nil {
			g.logger.Warn("skipping unreadable post", "file", file, "error", err)
			continue
		}

		route := "/" + collection + "/" + postSlug
		index[route] = lastMod
		index[route+"/"] = lastMod
	}

	return nil
}

func (g *Generator) readPost(path string) (time.Time, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return time.Time{}, "", err
	}

	var meta postEnvelope
	if _, err := frontmatter.Parse(f, &meta); err != nil {
		return time.Time{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	lastMod := info.ModTime()
	if parsed, ok := parseDate(meta.UpdatedAt); ok {
		lastMod = parsed
	} else if parsed, ok := parseDate(meta.PubDate); ok {
		lastMod = parsed
	}

	postSlug := strings.TrimSpace(meta.Slug)
	if postSlug == "" {
		base := strings.TrimSuffix(filepath.Base(path), ".md")
		if normalized, err := slug.Normalize(base); err == nil {
			postSlug = normalized
		} else {
			postSlug = base
		}
	}

	return lastMod, postSlug, nil
}

func (g *Generator) scanPages(index map[string]time.Time) error {
	err := filepath.WalkDir(g.pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		route := pageRoute(g.pagesDir, path)
		if _, claimed := index[route]; !claimed {
			index[route] = info.ModTime()
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("sitemap: walk %s: %w", g.pagesDir, err)
	}
	return nil
}

func pageRoute(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	if rel == "index" {
		rel = ""
	}
	rel = strings.TrimSuffix(rel, "/index")

	if rel == "" {
		return "/"
	}
	return "/" + rel + "/"
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2 2006",
	"Jan 2, 2006",
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
