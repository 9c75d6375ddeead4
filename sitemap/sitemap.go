package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry is a single <url> element of the rendered urlset.
type Entry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []Entry  `xml:"url"`
}

// Generator walks content collections and static pages and renders a
// sitemap urlset. Collection posts take their last-modified date from
// frontmatter when present; everything else falls back to file mtime.
type Generator struct {
	baseURL     string
	contentDir  string
	pagesDir    string
	collections []string
	changeFreq  string
	priority    string
	logger      interfaces.Logger
}

type Option func(*Generator)

func WithContentDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.contentDir = dir
		}
	}
}

func WithPagesDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.pagesDir = dir
		}
	}
}

func WithCollections(names ...string) Option {
	return func(g *Generator) {
		if len(names) > 0 {
			g.collections = names
		}
	}
}

func WithChangeFreq(freq string) Option {
	return func(g *Generator) {
		g.changeFreq = freq
	}
}

func WithPriority(priority string) Option {
	return func(g *Generator) {
		g.priority = priority
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func New(baseURL string, opts ...Option) *Generator {
	g := &Generator{
		baseURL:     strings.TrimRight(baseURL, "/"),
		contentDir:  "content",
		pagesDir:    "pages",
		collections: []string{"blog", "article"},
		changeFreq:  "weekly",
		priority:    "0.7",
		logger:      logging.NoOp(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Build scans the configured directories and returns the urlset entries
// sorted by location.
func (g *Generator) Build() ([]Entry, error) {
	index, err := g.LastModIndex()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(index))
	for route, lastMod := range index {
		if !strings.HasSuffix(route, "/") {
			continue
		}
		entries = append(entries, Entry{
			Loc:        g.baseURL + route,
			LastMod:    lastMod.UTC().Format(time.RFC3339),
			ChangeFreq: g.changeFreq,
			Priority:   g.priority,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Loc < entries[j].Loc
	})

	return entries, nil
}

// WriteTo renders the urlset XML document.
func (g *Generator) WriteTo(w io.Writer) error {
	entries, err := g.Build()
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("sitemap: write header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(urlset{Xmlns: xmlns, URLs: entries}); err != nil {
		return fmt.Errorf("sitemap: encode urlset: %w", err)
	}

	_, err = io.WriteString(w, "\n")
	return err
}

var fileExtension = regexp.MustCompile(`\.[a-zA-Z0-9]+$`)

// EnsureTrailingSlash appends a trailing slash to route-like paths.
// Paths that end in a file extension are returned unchanged.
func EnsureTrailingSlash(path string) string {
	if fileExtension.MatchString(path) || strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}
