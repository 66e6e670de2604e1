// Package tree implements the indexed tree: a rooted Node graph plus a
// derived path→node lookup table kept exactly consistent with the set of
// non-empty nodes reachable from the root.
package tree

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/fern/pkg/model"
)

// ErrNotFound reports a lookup miss: no node is indexed at the requested
// path. Callers must treat this as recoverable, not a crash.
var ErrNotFound = errors.New("path not indexed")

// Indexed wraps a root node and maintains the path index as a derived,
// always-consistent structure. The index is rebuilt incrementally on every
// structural mutation, never lazily. Empty sentinels carry no path and are
// skipped entirely during indexing and de-indexing.
type Indexed struct {
	root  *model.Node
	index map[string]*model.Node
}

// New builds an Indexed tree over the given root, indexing every non-empty
// node reachable from it. A nil root gets a fresh default root.
func New(root *model.Node) *Indexed {
	if root == nil {
		root = model.NewRoot()
	}
	t := &Indexed{
		root:  root,
		index: make(map[string]*model.Node),
	}
	t.indexSubtree(root)
	return t
}

// Root returns the root node. The tree owns the node graph; treat the
// result as borrowed.
func (t *Indexed) Root() *model.Node {
	return t.root
}

// Len returns the number of indexed paths.
func (t *Indexed) Len() int {
	return len(t.index)
}

// Paths returns the set of indexed paths.
func (t *Indexed) Paths() map[string]bool {
	paths := make(map[string]bool, len(t.index))
	for p := range t.index {
		paths[p] = true
	}
	return paths
}

// Get looks a node up by exact path. A miss returns ErrNotFound wrapped
// with the path.
func (t *Indexed) Get(path string) (*model.Node, error) {
	node, ok := t.index[path]
	if !ok {
		return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
	}
	return node, nil
}

// Add indexes node and its descendants, then appends it to the children of
// the node at parentPath. The parent must already be indexed and expandable.
func (t *Indexed) Add(parentPath string, node *model.Node) error {
	parent, err := t.Get(parentPath)
	if err != nil {
		return err
	}
	if !parent.Expandable() {
		return fmt.Errorf("%q: cannot add children to non-expandable node", parentPath)
	}
	t.indexSubtree(node)
	parent.Children = append(parent.Children, node)
	return nil
}

// Set replaces the full children sequence of the node at parentPath: the
// old children subtree is removed from the index first, then nodes are
// installed and indexed. Returns the mutated parent. Calling Set twice with
// structurally equal children yields an equivalent index (idempotent).
func (t *Indexed) Set(parentPath string, nodes []*model.Node) (*model.Node, error) {
	parent, err := t.Get(parentPath)
	if err != nil {
		return nil, err
	}
	if !parent.Expandable() {
		return nil, fmt.Errorf("%q: cannot set children on non-expandable node", parentPath)
	}
	for _, child := range parent.Children {
		t.deindexSubtree(child)
	}
	parent.Children = nodes
	for _, child := range nodes {
		t.indexSubtree(child)
	}
	return parent, nil
}

// Clear removes all children of the node at parentPath from the index and
// sets its children to an empty sequence.
func (t *Indexed) Clear(parentPath string) error {
	parent, err := t.Get(parentPath)
	if err != nil {
		return err
	}
	for _, child := range parent.Children {
		t.deindexSubtree(child)
	}
	parent.Children = nil
	return nil
}

// indexSubtree inserts node and all non-empty descendants into the index.
func (t *Indexed) indexSubtree(node *model.Node) {
	if node == nil || node.IsEmpty() {
		return
	}
	t.index[node.Data.Path] = node
	for _, child := range node.Children {
		t.indexSubtree(child)
	}
}

// deindexSubtree removes node and all non-empty descendants from the index.
func (t *Indexed) deindexSubtree(node *model.Node) {
	if node == nil || node.IsEmpty() {
		return
	}
	delete(t.index, node.Data.Path)
	for _, child := range node.Children {
		t.deindexSubtree(child)
	}
}
