package smartdoc

import (
	"fmt"
	"regexp"
	"strings"
)

// renderFunc converts a single node into its Markdown representation.
type renderFunc func(n Node) string

// nodeRenderers dispatches node tags to their renderers. Populated in init to
// allow the renderers to recurse through renderNodes. Tags missing from the
// table fall back to rendering the node's children, or the empty string.
var nodeRenderers map[string]renderFunc

func init() {
	nodeRenderers = map[string]renderFunc{
		"paragraph":       renderParagraph,
		"heading":         renderHeading,
		"text":            renderText,
		"bullet_list":     renderList,
		"ordered_list":    renderList,
		"list_item":       renderListItem,
		"table":           renderTable,
		"table_row":       renderTableRow,
		"table_header":    renderTableCell,
		"table_cell":      renderTableCell,
		"code_block":      renderCodeBlock,
		"blockquote":      renderBlockquote,
		"hard_break":      func(Node) string { return "\n" },
		"horizontal_rule": func(Node) string { return "\n---\n\n" },
		"check_list":      renderList,
		"check_list_item": renderCheckListItem,
		"mention":         renderMention,
		"attachment":      renderAttachment,
		"image":           renderImage,
		"callout":         renderCallout,
		// Both spellings appear in exported documents.
		"toc":               renderTableOfContents,
		"table_of_contents": renderTableOfContents,
	}
}

// Render converts a SmartDoc document into Markdown text. It never fails:
// malformed or unexpected input degrades to a best-effort text approximation
// or the empty string. The function mutates no shared state and is safe for
// concurrent use.
func Render(doc *Document) string {
	if doc == nil || doc.Data == nil {
		return ""
	}

	// Degraded exports ship an empty tree alongside an HTML blob or a
	// plaintext preview. Prefer the blob, then the preview.
	if len(doc.Data.Content) == 0 {
		if strings.TrimSpace(doc.HTML) != "" {
			return htmlToText(doc.HTML)
		}
		if strings.TrimSpace(doc.Preview) != "" {
			return strings.TrimSpace(doc.Preview)
		}
		return ""
	}

	return renderNodes(doc.Data.Content)
}

func renderNodes(nodes []Node) string {
	var out strings.Builder
	for _, node := range nodes {
		out.WriteString(renderNode(node))
	}
	return out.String()
}

func renderNode(n Node) string {
	if n.Type == "" {
		return ""
	}
	if render, ok := nodeRenderers[n.Type]; ok {
		return render(n)
	}
	if len(n.Content) > 0 {
		return renderNodes(n.Content)
	}
	return ""
}

func renderParagraph(n Node) string {
	content := renderNodes(n.Content)

	// Markdown has no native alignment; emit inline-styled HTML for the
	// non-default cases.
	if alignment := attrString(n.Attrs, "textAlign", ""); alignment != "" && alignment != "left" {
		return fmt.Sprintf("<p style=\"text-align: %s\">%s</p>\n\n", alignment, content)
	}

	return content + "\n\n"
}

func renderHeading(n Node) string {
	level := attrInt(n.Attrs, "level", 1)
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + renderNodes(n.Content) + "\n\n"
}

func renderText(n Node) string {
	text := n.Text
	for _, mark := range n.Marks {
		text = applyMark(text, mark)
	}
	return text
}

// applyMark wraps text according to the mark type. Each call wraps whatever
// the previous mark produced, so ["bold","italic"] on "hi" yields "***hi***".
func applyMark(text string, mark Mark) string {
	switch mark.Type {
	case "bold":
		return "**" + text + "**"
	case "italic":
		return "*" + text + "*"
	case "underline":
		return "<u>" + text + "</u>"
	case "strike":
		return "~~" + text + "~~"
	case "code":
		return "`" + text + "`"
	case "link":
		href := attrString(mark.Attrs, "href", "#")
		if title := attrString(mark.Attrs, "title", ""); title != "" {
			return fmt.Sprintf("[%s](%s %q)", text, href, title)
		}
		return fmt.Sprintf("[%s](%s)", text, href)
	case "color":
		if color := attrString(mark.Attrs, "color", ""); color != "" {
			return fmt.Sprintf("<span style=\"color: %s\">%s</span>", color, text)
		}
		return text
	case "highlight":
		background := attrString(mark.Attrs, "color", "")
		if background == "" {
			background = attrString(mark.Attrs, "backgroundColor", "")
		}
		if background != "" {
			return fmt.Sprintf("<mark style=\"background-color: %s\">%s</mark>", background, text)
		}
		return "<mark>" + text + "</mark>"
	default:
		return text
	}
}

// renderList flattens bullet, ordered, and check lists alike: children are
// concatenated with a single trailing newline. The item renderers decide the
// bullet shape.
func renderList(n Node) string {
	return renderNodes(n.Content) + "\n"
}

// renderListItem always emits an unordered bullet, even inside ordered
// lists. Known limitation carried over from the consumer-facing format.
func renderListItem(n Node) string {
	return "- " + strings.TrimSpace(renderNodes(n.Content)) + "\n"
}

func renderTable(n Node) string {
	if len(n.Content) == 0 {
		return ""
	}

	rows := make([]string, len(n.Content))
	for i, row := range n.Content {
		rows[i] = renderNode(row)
	}

	// When the first row carries header cells, insert the Markdown header
	// separator directly after it, one column per cell.
	first := n.Content[0]
	if rowHasHeader(first) {
		separator := "|" + strings.Repeat(" --- |", len(first.Content)) + "\n"
		return rows[0] + separator + strings.Join(rows[1:], "")
	}

	return strings.Join(rows, "") + "\n"
}

func rowHasHeader(row Node) bool {
	for _, cell := range row.Content {
		if cell.Type == "table_header" {
			return true
		}
	}
	return false
}

func renderTableRow(n Node) string {
	if len(n.Content) == 0 {
		return "|\n"
	}

	cells := make([]string, len(n.Content))
	for i, cell := range n.Content {
		cells[i] = renderNode(cell)
	}
	return "|" + strings.Join(cells, "|") + "|\n"
}

func renderTableCell(n Node) string {
	return " " + strings.TrimSpace(renderNodes(n.Content)) + " "
}

func renderCodeBlock(n Node) string {
	language := attrString(n.Attrs, "language", "")
	return "```" + language + "\n" + renderNodes(n.Content) + "```\n\n"
}

func renderBlockquote(n Node) string {
	content := renderNodes(n.Content)

	quoted := make([]string, 0, 4)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		quoted = append(quoted, "> "+line)
	}

	return strings.Join(quoted, "\n") + "\n\n"
}

func renderCheckListItem(n Node) string {
	checkbox := "[ ]"
	if attrBool(n.Attrs, "checked") {
		checkbox = "[x]"
	}
	return "- " + checkbox + " " + strings.TrimSpace(renderNodes(n.Content)) + "\n"
}

func renderMention(n Node) string {
	title := attrString(n.Attrs, "title", "Unknown User")
	prefix := attrString(n.Attrs, "prefix", "@")
	return prefix + title
}

func renderAttachment(n Node) string {
	title := attrString(n.Attrs, "title", "Attachment")
	url := attrString(n.Attrs, "url", "#")
	return fmt.Sprintf("[📎 %s](%s)", title, url)
}

func renderImage(n Node) string {
	src := attrString(n.Attrs, "src", "")
	title := attrString(n.Attrs, "title", "")

	alt := attrString(n.Attrs, "alt", "")
	if alt == "" {
		alt = title
	}
	if alt == "" {
		alt = "Image"
	}

	if title != "" {
		return fmt.Sprintf("![%s](%s %q)\n\n", alt, src, title)
	}
	return fmt.Sprintf("![%s](%s)\n\n", alt, src)
}

var calloutIcons = map[string]string{
	"info":    "💡",
	"warning": "⚠️",
	"error":   "❌",
	"success": "✅",
	"note":    "📝",
}

func renderCallout(n Node) string {
	category := attrString(n.Attrs, "type", "info")
	icon, ok := calloutIcons[category]
	if !ok {
		icon = calloutIcons["info"]
	}

	content := renderNodes(n.Content)
	return fmt.Sprintf("> %s **%s**\n> \n> %s\n\n",
		icon,
		strings.ToUpper(category),
		strings.ReplaceAll(content, "\n", "\n> "),
	)
}

// renderTableOfContents emits a fixed placeholder. The actual table is left
// to downstream tooling; the renderer never computes one.
func renderTableOfContents(Node) string {
	return "## Table of Contents\n\n*[Table of contents will be generated automatically]*\n\n"
}

var (
	breakTagPattern      = regexp.MustCompile(`(?i)<br\s*/?>`)
	openParagraphPattern = regexp.MustCompile(`(?i)<p[^>]*>`)
	endParagraphPattern  = regexp.MustCompile(`(?i)</p>`)
	anyTagPattern        = regexp.MustCompile(`<[^>]+>`)
	blankRunPattern      = regexp.MustCompile(`\n\s*\n`)
)

// htmlToText is a lossy HTML degradation, not a parser: line breaks and
// paragraph boundaries become newlines, every other tag is stripped, and runs
// of blank lines collapse to a single blank line.
func htmlToText(html string) string {
	text := breakTagPattern.ReplaceAllString(html, "\n")
	text = openParagraphPattern.ReplaceAllString(text, "\n")
	text = endParagraphPattern.ReplaceAllString(text, "\n")
	text = anyTagPattern.ReplaceAllString(text, "")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
