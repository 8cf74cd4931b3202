// Package yml navigates decoded YAML documents.
package yml

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	Node  yaml.Node
	Nodes []*yaml.Node
)

// Root returns the top-level node of a document, or nil for an empty one.
func Root(node *yaml.Node) *Node {
	if node == nil || node.Kind == 0 {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	return (*Node)(node)
}

// Lookup returns the value of key name in a mapping node. Keys match case
// insensitively; nil means absent.
func (n *Node) Lookup(name string) *Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	return (*Node)(Nodes(n.Content).LookupValueNode(name))
}

// Decode decodes the node into v.
func (n *Node) Decode(v interface{}) error {
	return (*yaml.Node)(n).Decode(v)
}

// IsSequence reports whether the node is a list.
func (n *Node) IsSequence() bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// LookupValueNode scans key/value pairs of mapping content.
func (n Nodes) LookupValueNode(name string) *yaml.Node {
	for i := 0; i+1 < len(n); i += 2 {
		if strings.EqualFold(n[i].Value, name) {
			return n[i+1]
		}
	}
	return nil
}
