package smartdoc

import "encoding/json"

// Document is the envelope for a SmartDoc rich-text value as produced by the
// record API. A well-formed value carries a Data tree; degraded exports may
// only carry a precomputed HTML blob or a plaintext preview, which the
// renderer falls back to in that order.
type Document struct {
	Data    *Body  `json:"data,omitempty"`
	HTML    string `json:"html,omitempty"`
	Preview string `json:"preview,omitempty"`
}

// Body is the root of the document tree. Type is expected to be "doc".
type Body struct {
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

// Node is one element of the document tree, discriminated by its Type tag.
// Unknown tags are tolerated: the renderer degrades to the concatenation of
// the node's children so future node types never break conversion.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is an inline formatting annotation applied to a text node. Marks apply
// in sequence order, each wrapping the output of the previous one; that order
// is significant and preserved exactly as given.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// ParseDocument decodes a JSON-encoded SmartDoc value.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func attrString(attrs map[string]any, key, fallback string) string {
	if value, ok := attrs[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

func attrInt(attrs map[string]any, key string, fallback int) int {
	switch value := attrs[key].(type) {
	case int:
		if value != 0 {
			return value
		}
	case int64:
		if value != 0 {
			return int(value)
		}
	case float64:
		if value != 0 {
			return int(value)
		}
	}
	return fallback
}

func attrBool(attrs map[string]any, key string) bool {
	value, _ := attrs[key].(bool)
	return value
}
