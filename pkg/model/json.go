// json.go - wire codec for Node graphs.
//
// Two shapes share the wire, matching both the persisted-state record and
// the static-document format:
//
//	{"empty": true}
//	{"fileData": {"path": ..., "name": ..., "type": ..., "expandable": ...},
//	 "children": [...]}
package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// nodeWire is the serialized shape of a Node.
type nodeWire struct {
	Empty    bool      `json:"empty,omitempty"`
	FileData *FileData `json:"fileData,omitempty"`
	Children []*Node   `json:"children,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.Kind == KindEmpty {
		return json.Marshal(nodeWire{Empty: true})
	}
	data := n.Data
	return json.Marshal(nodeWire{FileData: &data, Children: n.Children})
}

// UnmarshalJSON implements json.Unmarshaler. The variant is picked by the
// presence of the "empty" flag; anything without fileData is rejected.
func (n *Node) UnmarshalJSON(data []byte) error {
	var wire nodeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Empty {
		n.Kind = KindEmpty
		n.Data = FileData{}
		n.Children = nil
		return nil
	}
	if wire.FileData == nil {
		return fmt.Errorf("node record has neither fileData nor empty flag")
	}
	n.Data = *wire.FileData
	if n.Data.IsDirectory() {
		n.Kind = KindDirectory
	} else {
		n.Kind = KindFile
	}
	n.Children = wire.Children
	return nil
}

// EncodeNode serializes a Node graph for persistence or transport.
func EncodeNode(n *Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("cannot encode nil node")
	}
	return json.Marshal(n)
}

// DecodeNode parses a serialized Node graph and validates it.
func DecodeNode(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("invalid node graph: %w", err)
	}
	return &n, nil
}

// DecodeFileList parses a JSON array of FileData records, the shape returned
// by the remote listing service.
func DecodeFileList(data []byte) ([]FileData, error) {
	var entries []FileData
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode file list: %w", err)
	}
	return entries, nil
}
