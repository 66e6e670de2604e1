package store

import (
	"errors"
	"testing"

	"github.com/vanderheijden86/fern/pkg/model"
	"github.com/vanderheijden86/fern/pkg/tree"
)

func dirNode(path, name string) *model.Node {
	return model.NewNode(model.FileData{Path: path, Name: name, Type: model.TypeDirectory, Expandable: true})
}

// TestFreshStoreDefaultRoot verifies a fresh store exposes the default
// root (empty directory at path "") and persists it immediately.
func TestFreshStoreDefaultRoot(t *testing.T) {
	storage := NewMemoryStorage()

	s, err := New(storage, "A")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	root := s.CurrentState()
	want := model.FileData{Path: "", Name: "", Type: model.TypeDirectory, Expandable: true}
	if root.Data != want {
		t.Errorf("unexpected root fileData: %+v", root.Data)
	}
	if len(root.Children) != 0 {
		t.Errorf("expected empty children, got %d", len(root.Children))
	}

	// The fresh root must already be on disk
	if _, err := storage.Load(StateKey("A")); err != nil {
		t.Errorf("expected fresh root persisted, got %v", err)
	}
}

// TestExpandCollapseScenario runs the full expand/collapse round:
// AddNodes makes the child reachable and persisted, ClearNode removes it
// from both the index and storage.
func TestExpandCollapseScenario(t *testing.T) {
	storage := NewMemoryStorage()
	s, err := New(storage, "A")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	node, err := s.AddNodes("", []*model.Node{dirNode("/a", "a")})
	if err != nil {
		t.Fatalf("addNodes failed: %v", err)
	}
	if len(node.Children) != 1 {
		t.Fatalf("expected returned parent with 1 child, got %d", len(node.Children))
	}

	child, err := s.Tree().Get("/a")
	if err != nil {
		t.Fatalf("expected /a indexed after expand, got %v", err)
	}
	if child.Data.Name != "a" {
		t.Errorf("unexpected child: %+v", child.Data)
	}

	// Persisted record now contains the child
	blob, err := storage.Load(s.Key())
	if err != nil {
		t.Fatalf("load persisted state: %v", err)
	}
	persisted, err := model.DecodeNode(blob)
	if err != nil {
		t.Fatalf("decode persisted state: %v", err)
	}
	if len(persisted.Children) != 1 || persisted.Children[0].Data.Path != "/a" {
		t.Errorf("persisted record missing child: %+v", persisted.Children)
	}

	// Collapse the root
	if err := s.ClearNode(""); err != nil {
		t.Fatalf("clearNode failed: %v", err)
	}
	if _, err := s.Tree().Get("/a"); !errors.Is(err, tree.ErrNotFound) {
		t.Errorf("expected lookup miss after collapse, got %v", err)
	}

	blob, err = storage.Load(s.Key())
	if err != nil {
		t.Fatalf("load persisted state: %v", err)
	}
	persisted, err = model.DecodeNode(blob)
	if err != nil {
		t.Fatalf("decode persisted state: %v", err)
	}
	if len(persisted.Children) != 0 {
		t.Errorf("expected collapse persisted, got %d children", len(persisted.Children))
	}
}

// TestRestoreAcrossSessions verifies a second store over the same storage
// and id restores the expanded tree, index included.
func TestRestoreAcrossSessions(t *testing.T) {
	storage := NewMemoryStorage()

	s1, err := New(storage, "A")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	parent := dirNode("/a", "a")
	parent.Children = []*model.Node{dirNode("/a/b", "b")}
	if _, err := s1.AddNodes("", []*model.Node{parent}); err != nil {
		t.Fatalf("addNodes failed: %v", err)
	}

	s2, err := New(storage, "A")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	wantPaths := s1.Tree().Paths()
	gotPaths := s2.Tree().Paths()
	if len(wantPaths) != len(gotPaths) {
		t.Fatalf("index size mismatch after restore: want %d, got %d", len(wantPaths), len(gotPaths))
	}
	for p := range wantPaths {
		n1, err1 := s1.Tree().Get(p)
		n2, err2 := s2.Tree().Get(p)
		if err1 != nil || err2 != nil {
			t.Fatalf("lookup %q: %v / %v", p, err1, err2)
		}
		if n1.Data != n2.Data {
			t.Errorf("fileData mismatch at %q: %+v vs %+v", p, n1.Data, n2.Data)
		}
	}
}

// TestCorruptStateRecovered verifies corruption is silently replaced with
// a fresh default root rather than surfaced.
func TestCorruptStateRecovered(t *testing.T) {
	storage := NewMemoryStorage()
	if err := storage.Save(StateKey("A"), []byte("not json at all")); err != nil {
		t.Fatalf("seed corrupt state: %v", err)
	}

	s, err := New(storage, "A")
	if err != nil {
		t.Fatalf("expected silent recovery, got %v", err)
	}
	if len(s.CurrentState().Children) != 0 {
		t.Error("expected fresh root after corruption")
	}

	// The fresh root must have overwritten the corrupt blob
	blob, err := storage.Load(StateKey("A"))
	if err != nil {
		t.Fatalf("load after recovery: %v", err)
	}
	if _, err := model.DecodeNode(blob); err != nil {
		t.Errorf("expected valid persisted state after recovery, got %v", err)
	}
}

// TestIndependentTreeIdentifiers verifies two ids share one persistence
// scope without interfering.
func TestIndependentTreeIdentifiers(t *testing.T) {
	storage := NewMemoryStorage()

	sa, err := New(storage, "A")
	if err != nil {
		t.Fatalf("new store A failed: %v", err)
	}
	sb, err := New(storage, "B")
	if err != nil {
		t.Fatalf("new store B failed: %v", err)
	}

	if _, err := sa.AddNodes("", []*model.Node{dirNode("/only-in-a", "only-in-a")}); err != nil {
		t.Fatalf("addNodes failed: %v", err)
	}

	if _, err := sb.Tree().Get("/only-in-a"); !errors.Is(err, tree.ErrNotFound) {
		t.Errorf("expected tree B untouched, got %v", err)
	}

	reopened, err := New(storage, "B")
	if err != nil {
		t.Fatalf("reopen B failed: %v", err)
	}
	if len(reopened.CurrentState().Children) != 0 {
		t.Error("expected B still empty after A's mutation")
	}
}

// TestEmptyTreeID is rejected.
func TestEmptyTreeID(t *testing.T) {
	if _, err := New(NewMemoryStorage(), ""); err == nil {
		t.Error("expected error for empty tree identifier")
	}
}

// TestReset reinstalls a fresh root and persists it.
func TestReset(t *testing.T) {
	storage := NewMemoryStorage()
	s, err := New(storage, "A")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if _, err := s.AddNodes("", []*model.Node{dirNode("/a", "a")}); err != nil {
		t.Fatalf("addNodes failed: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if len(s.CurrentState().Children) != 0 {
		t.Error("expected empty root after reset")
	}
	if _, err := s.Tree().Get("/a"); !errors.Is(err, tree.ErrNotFound) {
		t.Errorf("expected /a gone after reset, got %v", err)
	}
}

// TestFileStorageRoundTrip exercises the file backend end to end.
func TestFileStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir)

	if _, err := storage.Load("missing"); !errors.Is(err, ErrNoState) {
		t.Errorf("expected ErrNoState for missing key, got %v", err)
	}

	s, err := New(storage, "main")
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if _, err := s.AddNodes("", []*model.Node{dirNode("/a", "a")}); err != nil {
		t.Fatalf("addNodes failed: %v", err)
	}

	reopened, err := New(storage, "main")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if _, err := reopened.Tree().Get("/a"); err != nil {
		t.Errorf("expected /a restored from disk, got %v", err)
	}
}
