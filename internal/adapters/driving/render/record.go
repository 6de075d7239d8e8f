package render

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Cell is one named value of a record.
type Cell struct {
	Key   string
	Value string
}

// Record is a row whose keys keep column order when encoded.
type Record []Cell

// MarshalJSON encodes the record as an object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping in column order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range r {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Value},
		)
	}
	return node, nil
}
