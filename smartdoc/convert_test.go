package smartdoc

import (
	"encoding/json"
	"testing"
)

func decodeRecord(t *testing.T, payload string) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	return record
}

func TestConvertFields(t *testing.T) {
	record := decodeRecord(t, `{
		"title": "Quarterly Report",
		"count": 3,
		"summary": {
			"data": {
				"type": "doc",
				"content": [
					{"type": "paragraph", "content": [{"type": "text", "text": "All good."}]}
				]
			}
		},
		"notes": {
			"data": {"type": "doc", "content": []},
			"preview": "short note"
		}
	}`)

	converted := ConvertFields(record)

	if len(converted) != 2 {
		t.Fatalf("expected 2 converted fields, got %d: %#v", len(converted), converted)
	}
	if converted["summary_markdown"] != "All good.\n\n" {
		t.Fatalf("summary conversion mismatch: %q", converted["summary_markdown"])
	}
	if converted["notes_markdown"] != "short note" {
		t.Fatalf("preview conversion mismatch: %q", converted["notes_markdown"])
	}
	if _, ok := record["summary_markdown"]; ok {
		t.Fatalf("input record must not be mutated")
	}
}

func TestConvertFieldsSkipsNonDocuments(t *testing.T) {
	record := decodeRecord(t, `{
		"plain": "text",
		"number": 42,
		"nested": {"data": {"type": "other", "content": []}},
		"shapeless": {"data": {"type": "doc"}},
		"null_field": null
	}`)

	converted := ConvertFields(record)
	if len(converted) != 0 {
		t.Fatalf("expected no conversions, got %#v", converted)
	}
}

func TestConvertFieldsSkipsEmptyRenders(t *testing.T) {
	record := decodeRecord(t, `{
		"empty": {"data": {"type": "doc", "content": []}}
	}`)

	converted := ConvertFields(record)
	if len(converted) != 0 {
		t.Fatalf("empty render must not add a field, got %#v", converted)
	}
}

func TestAsDocumentDetection(t *testing.T) {
	record := decodeRecord(t, `{
		"html_only": {"data": {"type": "doc"}, "html": "<p>hi</p>"},
		"preview_only": {"data": {"type": "doc"}, "preview": "hi"}
	}`)

	for _, field := range []string{"html_only", "preview_only"} {
		doc, ok := AsDocument(record[field])
		if !ok {
			t.Fatalf("%s should be detected as a document", field)
		}
		if got := Render(doc); got != "hi" {
			t.Fatalf("%s render mismatch: %q", field, got)
		}
	}

	if _, ok := AsDocument("plain string"); ok {
		t.Fatalf("strings are not documents")
	}
	if _, ok := AsDocument(nil); ok {
		t.Fatalf("nil is not a document")
	}
}

func TestDecodePreservesMarkOrder(t *testing.T) {
	record := decodeRecord(t, `{
		"body": {
			"data": {
				"type": "doc",
				"content": [
					{"type": "paragraph", "content": [
						{"type": "text", "text": "hi", "marks": [{"type": "bold"}, {"type": "italic"}]}
					]}
				]
			}
		}
	}`)

	converted := ConvertFields(record)
	if converted["body_markdown"] != "***hi***\n\n" {
		t.Fatalf("mark order lost in decoding: %q", converted["body_markdown"])
	}
}
