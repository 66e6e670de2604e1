package model

import (
	"fmt"
	"strings"
)

// TypeDirectory is the reserved MIME-like type tag for directories.
// Directories are always expandable; the converse does not hold, since an
// expandable non-directory (e.g. an archive) is permitted.
const TypeDirectory = "directory"

// FileData describes a single file or directory entry.
// Path is the unique identifier (slash-separated); Name is the display
// label and is empty only for the root.
type FileData struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Expandable bool   `json:"expandable"`
}

// IsDirectory reports whether the entry carries the reserved directory type.
func (f FileData) IsDirectory() bool {
	return f.Type == TypeDirectory
}

// DisplayName returns the label shown in the UI. The root has no name, so
// it renders as "/".
func (f FileData) DisplayName() string {
	if f.Name == "" {
		return "/"
	}
	return f.Name
}

// Validate checks the FileData invariants.
func (f FileData) Validate() error {
	if f.IsDirectory() && !f.Expandable {
		return fmt.Errorf("%s: directory must be expandable", f.Path)
	}
	if f.Name == "" && f.Path != "" {
		return fmt.Errorf("%s: name may be empty only for the root", f.Path)
	}
	if f.Path != "" && !strings.HasPrefix(f.Path, "/") {
		return fmt.Errorf("%q: path must be slash-rooted or empty", f.Path)
	}
	return nil
}

// SortWeight returns the ordering class used by providers: directories
// first, then other expandable items (archives etc.), then plain files.
// Equal-weight items keep their original order.
func (f FileData) SortWeight() int {
	switch {
	case f.IsDirectory():
		return 0
	case f.Expandable:
		return 1
	default:
		return 2
	}
}

// Kind discriminates the Node variants. Empty is the sentinel for an
// expanded directory with zero children; it carries no FileData and is
// never indexed by path.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindEmpty:
		return "empty"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one vertex of the tree: a file/directory plus its (possibly
// unfetched) children, or the Empty sentinel. Children ordering is
// significant for display but not for identity.
type Node struct {
	Kind     Kind
	Data     FileData
	Children []*Node
}

// NewNode builds a non-empty node for the given entry. The variant is
// derived from the entry's type tag.
func NewNode(data FileData) *Node {
	kind := KindFile
	if data.IsDirectory() {
		kind = KindDirectory
	}
	return &Node{Kind: kind, Data: data}
}

// NewEmptyNode returns the Empty sentinel used to render "this directory
// has no children" without polluting the path index.
func NewEmptyNode() *Node {
	return &Node{Kind: KindEmpty}
}

// NewRoot returns a fresh default root: an empty directory at path "".
func NewRoot() *Node {
	return &Node{
		Kind: KindDirectory,
		Data: FileData{Path: "", Name: "", Type: TypeDirectory, Expandable: true},
	}
}

// IsEmpty reports whether the node is the Empty sentinel.
func (n *Node) IsEmpty() bool {
	return n != nil && n.Kind == KindEmpty
}

// Expandable reports whether children may be fetched for this node.
func (n *Node) Expandable() bool {
	return n != nil && n.Kind != KindEmpty && n.Data.Expandable
}

// ShallowClone duplicates the node's FileData and resets nested children,
// decoupling the caller's copy from the provider's original objects. Empty
// sentinels pass through untouched (a fresh sentinel is returned).
func (n *Node) ShallowClone() *Node {
	if n == nil {
		return nil
	}
	if n.Kind == KindEmpty {
		return NewEmptyNode()
	}
	return &Node{Kind: n.Kind, Data: n.Data}
}

// Clone deep-copies the node and all descendants.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{Kind: n.Kind, Data: n.Data}
	if n.Children != nil {
		clone.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			clone.Children = append(clone.Children, child.Clone())
		}
	}
	return clone
}

// Count returns the number of nodes in the subtree, Empty sentinels included.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Children {
		count += child.Count()
	}
	return count
}

// Validate checks the subtree's invariants recursively.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("nil node")
	}
	if n.Kind == KindEmpty {
		if len(n.Children) != 0 {
			return fmt.Errorf("empty sentinel must not have children")
		}
		return nil
	}
	if err := n.Data.Validate(); err != nil {
		return err
	}
	if n.Kind == KindDirectory && !n.Data.IsDirectory() {
		return fmt.Errorf("%s: directory node with type %q", n.Data.Path, n.Data.Type)
	}
	if len(n.Children) > 0 && !n.Data.Expandable {
		return fmt.Errorf("%s: non-expandable node with children", n.Data.Path)
	}
	for _, child := range n.Children {
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}
