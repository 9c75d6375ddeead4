package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-sitekit/sitemap"
)

func main() {
	var (
		baseURL     = flag.String("base-url", "", "Canonical site URL (required)")
		contentDir  = flag.String("content-dir", "content", "Directory holding collection markdown files")
		pagesDir    = flag.String("pages-dir", "pages", "Directory holding static page sources")
		collections = flag.String("collections", "", "Comma separated collection names (defaults to blog,article)")
		output      = flag.String("output", "-", "Output path (- writes stdout)")
	)

	flag.Parse()

	if *baseURL == "" {
		log.Fatalf("--base-url is required")
	}

	opts := []sitemap.Option{
		sitemap.WithContentDir(*contentDir),
		sitemap.WithPagesDir(*pagesDir),
	}
	if *collections != "" {
		opts = append(opts, sitemap.WithCollections(splitList(*collections)...))
	}

	generator := sitemap.New(*baseURL, opts...)

	out := os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := generator.WriteTo(out); err != nil {
		log.Fatalf("write sitemap: %v", err)
	}
}

func splitList(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
