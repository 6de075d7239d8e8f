package adf

import (
	"encoding/json"
	"strings"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// bullet prefixes each flattened list item.
const bullet = "• "

// Parse builds a node tree from a decoded JSON value.
//
// An object with a string "text" is a leaf. An object with a "content"
// array is a block; its "type" is kept as-is so unknown tags survive.
// Anything else, including nil, yields nil.
func Parse(v any) domain.Node {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if text, ok := obj["text"].(string); ok {
		return &domain.TextNode{Text: text}
	}
	content, ok := obj["content"].([]any)
	if !ok {
		return nil
	}

	typ, _ := obj["type"].(string)
	block := &domain.BlockNode{
		Type:    domain.NodeType(typ),
		Content: make([]domain.Node, 0, len(content)),
	}
	for _, child := range content {
		if n := Parse(child); n != nil {
			block.Content = append(block.Content, n)
		}
	}
	return block
}

// ParseJSON decodes raw document JSON and parses it.
func ParseJSON(raw []byte) (domain.Node, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return Parse(v), nil
}

// Flatten renders a node tree as plain text.
//
// Paragraphs and headings end with a newline, list items are bulleted and
// end with a newline, lists add nothing of their own. Any other block is
// the plain concatenation of its children.
func Flatten(n domain.Node) string {
	switch n := n.(type) {
	case *domain.TextNode:
		if n == nil {
			return ""
		}
		return n.Text
	case *domain.BlockNode:
		if n == nil {
			return ""
		}
		return flattenBlock(n)
	default:
		return ""
	}
}

func flattenBlock(n *domain.BlockNode) string {
	var sb strings.Builder
	for _, child := range n.Content {
		sb.WriteString(Flatten(child))
	}
	joined := sb.String()

	switch n.Type {
	case domain.NodeParagraph, domain.NodeHeading:
		return joined + "\n"
	case domain.NodeBulletList, domain.NodeOrderedList:
		return joined
	case domain.NodeListItem:
		return bullet + strings.TrimSpace(joined) + "\n"
	default:
		return joined
	}
}

// ToText parses a decoded JSON value and flattens it.
// Values that are not documents yield an empty string.
func ToText(v any) string {
	return Flatten(Parse(v))
}

// FromText builds the minimal document holding text as one paragraph.
func FromText(text string) domain.Node {
	return domain.DocumentFromText(text)
}
