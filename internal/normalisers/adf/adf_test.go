package adf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestFlatten_Nil(t *testing.T) {
	assert.Equal(t, "", Flatten(nil))
	assert.Equal(t, "", Flatten((*domain.BlockNode)(nil)))
	assert.Equal(t, "", Flatten((*domain.TextNode)(nil)))
}

func TestFlatten_Text(t *testing.T) {
	assert.Equal(t, "  raw  ", Flatten(&domain.TextNode{Text: "  raw  "}))
}

func TestFlatten_ParagraphAndHeading(t *testing.T) {
	doc := &domain.BlockNode{Type: domain.NodeDoc, Content: []domain.Node{
		&domain.BlockNode{Type: domain.NodeHeading, Content: []domain.Node{
			&domain.TextNode{Text: "Steps"},
		}},
		&domain.BlockNode{Type: domain.NodeParagraph, Content: []domain.Node{
			&domain.TextNode{Text: "Open the "},
			&domain.TextNode{Text: "settings page."},
		}},
	}}

	assert.Equal(t, "Steps\nOpen the settings page.\n", Flatten(doc))
}

func TestFlatten_Lists(t *testing.T) {
	item := func(text string) domain.Node {
		return &domain.BlockNode{Type: domain.NodeListItem, Content: []domain.Node{
			&domain.BlockNode{Type: domain.NodeParagraph, Content: []domain.Node{
				&domain.TextNode{Text: text},
			}},
		}}
	}

	bullets := &domain.BlockNode{Type: domain.NodeBulletList, Content: []domain.Node{item("one"), item("two")}}
	ordered := &domain.BlockNode{Type: domain.NodeOrderedList, Content: []domain.Node{item("first")}}

	assert.Equal(t, "• one\n• two\n", Flatten(bullets))
	assert.Equal(t, "• first\n", Flatten(ordered))
}

func TestFlatten_UnknownTypeConcatenates(t *testing.T) {
	panel := &domain.BlockNode{Type: "panel", Content: []domain.Node{
		&domain.TextNode{Text: "a"},
		&domain.TextNode{Text: "b"},
	}}

	assert.Equal(t, "ab", Flatten(panel))
}

func TestFlatten_RoundTrip(t *testing.T) {
	for _, s := range []string{"hello", "Fix the login bug", "x"} {
		assert.Equal(t, s+"\n", Flatten(FromText(s)))
	}
}

func TestParse(t *testing.T) {
	v := decode(t, `{
		"type": "doc", "version": 1,
		"content": [
			{"type": "paragraph", "content": [
				{"type": "text", "text": "Hello "},
				{"type": "text", "text": "world", "marks": [{"type": "strong"}]}
			]},
			{"type": "rule"},
			{"type": "bulletList", "content": [
				{"type": "listItem", "content": [
					{"type": "paragraph", "content": [{"type": "text", "text": "item  "}]}
				]}
			]}
		]
	}`)

	node := Parse(v)
	doc, ok := node.(*domain.BlockNode)
	require.True(t, ok)
	assert.Equal(t, domain.NodeDoc, doc.Type)
	// The rule has neither text nor content and is dropped.
	assert.Len(t, doc.Content, 2)

	assert.Equal(t, "Hello world\n• item\n", Flatten(node))
}

func TestParse_NonDocuments(t *testing.T) {
	assert.Nil(t, Parse(nil))
	assert.Nil(t, Parse("plain string"))
	assert.Nil(t, Parse(42.0))
	assert.Nil(t, Parse(map[string]any{"type": "paragraph"}))
}

func TestParse_TextWinsOverContent(t *testing.T) {
	node := Parse(map[string]any{
		"text":    "leaf",
		"content": []any{map[string]any{"text": "child"}},
	})

	assert.Equal(t, &domain.TextNode{Text: "leaf"}, node)
}

func TestParseJSON(t *testing.T) {
	node, err := ParseJSON([]byte(`{"type":"doc","content":[{"type":"heading","content":[{"type":"text","text":"Title"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Title\n", Flatten(node))

	_, err = ParseJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestToText(t *testing.T) {
	assert.Equal(t, "", ToText(nil))
	assert.Equal(t, "body\n", ToText(decode(t, `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"body"}]}]}`)))
}

func TestFromText_IsVerbatim(t *testing.T) {
	text := "line one\n\n- not a list"
	b, err := json.Marshal(FromText(text))
	require.NoError(t, err)

	// The wire form parses back to a single paragraph.
	node, err := ParseJSON(b)
	require.NoError(t, err)
	doc := node.(*domain.BlockNode)
	require.Len(t, doc.Content, 1)
	assert.Equal(t, text+"\n", Flatten(node))
}
