package smartdoc

// ConvertFields scans a decoded record for fields holding SmartDoc values and
// renders each one, returning a sibling map keyed "<field>_markdown". Fields
// that do not look like documents are skipped; fields that render to the
// empty string produce no entry. The input record is never mutated.
func ConvertFields(record map[string]any) map[string]string {
	converted := map[string]string{}

	for name, value := range record {
		doc, ok := AsDocument(value)
		if !ok {
			continue
		}
		if markdown := Render(doc); markdown != "" {
			converted[name+"_markdown"] = markdown
		}
	}

	return converted
}

// AsDocument reports whether a decoded JSON value carries a SmartDoc and, if
// so, returns it. Detection is structural rather than reflective: the value
// must hold a nested "data" object tagged "doc" and expose at least one of
// content, html, or preview.
func AsDocument(value any) (*Document, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}

	data, ok := obj["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	if kind, _ := data["type"].(string); kind != "doc" {
		return nil, false
	}

	_, hasContent := data["content"]
	_, hasHTML := obj["html"]
	_, hasPreview := obj["preview"]
	if !hasContent && !hasHTML && !hasPreview {
		return nil, false
	}

	return decodeDocument(obj), true
}

func decodeDocument(obj map[string]any) *Document {
	doc := &Document{}

	if html, ok := obj["html"].(string); ok {
		doc.HTML = html
	}
	if preview, ok := obj["preview"].(string); ok {
		doc.Preview = preview
	}

	if data, ok := obj["data"].(map[string]any); ok {
		body := &Body{}
		body.Type, _ = data["type"].(string)
		if raw, ok := data["content"].([]any); ok {
			body.Content = decodeNodes(raw)
		}
		doc.Data = body
	}

	return doc
}

func decodeNodes(raw []any) []Node {
	nodes := make([]Node, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			nodes = append(nodes, decodeNode(obj))
		}
	}
	return nodes
}

func decodeNode(obj map[string]any) Node {
	node := Node{}
	node.Type, _ = obj["type"].(string)
	node.Text, _ = obj["text"].(string)

	if attrs, ok := obj["attrs"].(map[string]any); ok {
		node.Attrs = attrs
	}
	if content, ok := obj["content"].([]any); ok {
		node.Content = decodeNodes(content)
	}
	if marks, ok := obj["marks"].([]any); ok {
		for _, item := range marks {
			if markObj, ok := item.(map[string]any); ok {
				mark := Mark{}
				mark.Type, _ = markObj["type"].(string)
				if attrs, ok := markObj["attrs"].(map[string]any); ok {
					mark.Attrs = attrs
				}
				node.Marks = append(node.Marks, mark)
			}
		}
	}

	return node
}
