package domain

import "encoding/json"

// NodeType is the type tag of a rich-text block node.
// Tags outside the listed constants are valid and render as plain
// concatenation of their children.
type NodeType string

// Known rich-text node types.
const (
	NodeDoc         NodeType = "doc"
	NodeParagraph   NodeType = "paragraph"
	NodeHeading     NodeType = "heading"
	NodeBulletList  NodeType = "bulletList"
	NodeOrderedList NodeType = "orderedList"
	NodeListItem    NodeType = "listItem"
	NodeText        NodeType = "text"
)

// Node is one node of a rich-text document tree.
// It is either a *TextNode or a *BlockNode.
type Node interface {
	node()
}

// TextNode is a leaf carrying literal text.
type TextNode struct {
	Text string
}

// BlockNode is a container with a type tag and ordered children.
type BlockNode struct {
	Type    NodeType
	Content []Node
}

func (*TextNode) node()  {}
func (*BlockNode) node() {}

// MarshalJSON encodes the leaf in document wire format.
func (n *TextNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		Text string   `json:"text"`
	}{NodeText, n.Text})
}

// MarshalJSON encodes the block in document wire format.
// The root doc node carries the format version.
func (n *BlockNode) MarshalJSON() ([]byte, error) {
	content := n.Content
	if content == nil {
		content = []Node{}
	}
	if n.Type == NodeDoc {
		return json.Marshal(struct {
			Type    NodeType `json:"type"`
			Version int      `json:"version"`
			Content []Node   `json:"content"`
		}{n.Type, 1, content})
	}
	return json.Marshal(struct {
		Type    NodeType `json:"type"`
		Content []Node   `json:"content"`
	}{n.Type, content})
}

// DocumentFromText wraps text in a document holding exactly one paragraph.
// The text is used verbatim; line breaks or markup in it are not interpreted.
func DocumentFromText(text string) *BlockNode {
	return &BlockNode{
		Type: NodeDoc,
		Content: []Node{
			&BlockNode{
				Type:    NodeParagraph,
				Content: []Node{&TextNode{Text: text}},
			},
		},
	}
}
