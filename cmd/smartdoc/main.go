package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/goliatone/go-sitekit/smartdoc"
)

func main() {
	var (
		filePath   = flag.String("file", "-", "SmartDoc JSON file to convert (- reads stdin)")
		fieldsMode = flag.Bool("fields", false, "Treat the input as a record and convert every structured field")
		renderHTML = flag.Bool("html", false, "Render the resulting markdown into HTML")
	)

	flag.Parse()

	input, err := readInput(*filePath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	if *fieldsMode {
		if err := convertRecord(os.Stdout, input, *renderHTML); err != nil {
			log.Fatalf("convert record: %v", err)
		}
		return
	}

	doc, err := smartdoc.ParseDocument(input)
	if err != nil {
		log.Fatalf("parse document: %v", err)
	}

	markdown := smartdoc.Render(doc)
	if !*renderHTML {
		fmt.Fprintln(os.Stdout, markdown)
		return
	}

	html, err := renderMarkdown(markdown)
	if err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Fprintln(os.Stdout, html)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func convertRecord(w io.Writer, input []byte, renderHTML bool) error {
	var record map[string]any
	if err := json.Unmarshal(input, &record); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	converted := smartdoc.ConvertFields(record)
	if len(converted) == 0 {
		fmt.Fprintln(w, "no structured document fields found")
		return nil
	}

	keys := make([]string, 0, len(converted))
	for key := range converted {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := converted[key]
		if renderHTML {
			html, err := renderMarkdown(value)
			if err != nil {
				return err
			}
			value = html
		}
		fmt.Fprintf(w, "--- %s ---\n%s\n\n", key, value)
	}
	return nil
}

func renderMarkdown(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return buf.String(), nil
}
