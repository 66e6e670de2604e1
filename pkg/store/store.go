package store

import (
	"errors"
	"fmt"
	"log"

	"github.com/vanderheijden86/fern/pkg/model"
	"github.com/vanderheijden86/fern/pkg/tree"
)

// Store owns one indexed tree and its persisted snapshot. It owns exactly
// one storage key, derived from the caller-supplied tree identifier, so
// multiple independent trees coexist in the same persistence scope.
//
// Mutations delegate to the indexed tree and then persist the entire root
// synchronously before returning. Corrupted or absent persisted state is
// recovered silently with a fresh default root.
type Store struct {
	id      string
	storage Storage
	tree    *tree.Indexed
}

// StateKey returns the storage key for a tree identifier.
func StateKey(id string) string {
	return "tree-state-" + id
}

// New opens the store for the given tree identifier. A persisted root is
// restored when present and well formed; otherwise a fresh default root
// (empty directory at path "") is installed and persisted immediately.
func New(storage Storage, id string) (*Store, error) {
	if id == "" {
		return nil, fmt.Errorf("tree identifier cannot be empty")
	}
	s := &Store{id: id, storage: storage}

	data, err := storage.Load(s.Key())
	if err == nil {
		root, decodeErr := model.DecodeNode(data)
		if decodeErr == nil {
			s.tree = tree.New(root)
			return s, nil
		}
		// Corrupted state is not surfaced as an error; start over.
		log.Printf("warning: invalid persisted state for tree %q, using fresh root: %v", id, decodeErr)
	} else if !errors.Is(err, ErrNoState) {
		log.Printf("warning: failed to load state for tree %q, using fresh root: %v", id, err)
	}

	s.tree = tree.New(model.NewRoot())
	if err := s.persist(); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the tree identifier.
func (s *Store) ID() string {
	return s.id
}

// Key returns the single storage key this store owns.
func (s *Store) Key() string {
	return StateKey(s.id)
}

// Tree exposes the indexed tree for read-side lookups.
func (s *Store) Tree() *tree.Indexed {
	return s.tree
}

// CurrentState returns the current root. The reference is borrowed;
// mutating it outside Store methods is a contract violation.
func (s *Store) CurrentState() *model.Node {
	return s.tree.Root()
}

// AddNodes installs children as the full children sequence of the node at
// path, persists the whole root, and returns the updated node for the
// caller to render.
func (s *Store) AddNodes(path string, children []*model.Node) (*model.Node, error) {
	parent, err := s.tree.Set(path, children)
	if err != nil {
		return nil, err
	}
	if err := s.persist(); err != nil {
		return nil, err
	}
	return parent, nil
}

// ClearNode discards the children of the node at path from both the index
// and persisted storage.
func (s *Store) ClearNode(path string) error {
	if err := s.tree.Clear(path); err != nil {
		return err
	}
	return s.persist()
}

// Reset discards the whole tree and persists a fresh default root.
func (s *Store) Reset() error {
	s.tree = tree.New(model.NewRoot())
	return s.persist()
}

// persist serializes the full root and overwrites the persisted blob.
func (s *Store) persist() error {
	data, err := model.EncodeNode(s.tree.Root())
	if err != nil {
		return fmt.Errorf("serialize tree %q: %w", s.id, err)
	}
	if err := s.storage.Save(s.Key(), data); err != nil {
		return fmt.Errorf("persist tree %q: %w", s.id, err)
	}
	return nil
}
