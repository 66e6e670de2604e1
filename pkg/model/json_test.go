package model

import (
	"strings"
	"testing"
)

// sampleTree builds a small tree with a nested directory, an archive, a
// plain file, and an Empty sentinel.
func sampleTree() *Node {
	root := NewRoot()
	docs := NewNode(FileData{Path: "/docs", Name: "docs", Type: TypeDirectory, Expandable: true})
	docs.Children = []*Node{
		NewNode(FileData{Path: "/docs/readme.txt", Name: "readme.txt", Type: "text/plain"}),
		NewNode(FileData{Path: "/docs/bundle.zip", Name: "bundle.zip", Type: "application/zip", Expandable: true}),
	}
	emptyDir := NewNode(FileData{Path: "/tmp", Name: "tmp", Type: TypeDirectory, Expandable: true})
	emptyDir.Children = []*Node{NewEmptyNode()}
	root.Children = []*Node{docs, emptyDir}
	return root
}

// TestNodeRoundTrip serializes a tree and decodes it back, expecting
// structural equality including the Empty sentinel.
func TestNodeRoundTrip(t *testing.T) {
	root := sampleTree()

	data, err := EncodeNode(root)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := DecodeNode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	assertSameTree(t, root, decoded)
}

func assertSameTree(t *testing.T, want, got *Node) {
	t.Helper()
	if want.Kind != got.Kind {
		t.Fatalf("kind mismatch: want %v, got %v", want.Kind, got.Kind)
	}
	if want.Data != got.Data {
		t.Fatalf("fileData mismatch at %q: want %+v, got %+v", want.Data.Path, want.Data, got.Data)
	}
	if len(want.Children) != len(got.Children) {
		t.Fatalf("children count mismatch at %q: want %d, got %d",
			want.Data.Path, len(want.Children), len(got.Children))
	}
	for i := range want.Children {
		assertSameTree(t, want.Children[i], got.Children[i])
	}
}

// TestEmptyMarkerWireShape verifies the sentinel serializes as
// {"empty":true} with no fileData.
func TestEmptyMarkerWireShape(t *testing.T) {
	data, err := EncodeNode(NewEmptyNode())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.Contains(string(data), `"empty":true`) {
		t.Errorf("expected empty flag on the wire, got %s", data)
	}
	if strings.Contains(string(data), "fileData") {
		t.Errorf("expected no fileData for sentinel, got %s", data)
	}
}

// TestDecodeStaticDocument parses the static-document format directly.
func TestDecodeStaticDocument(t *testing.T) {
	doc := `{
		"fileData": {"path": "", "name": "", "type": "directory", "expandable": true},
		"children": [
			{"fileData": {"path": "/src", "name": "src", "type": "directory", "expandable": true},
			 "children": [
				{"fileData": {"path": "/src/main.go", "name": "main.go", "type": "text/plain", "expandable": false}}
			 ]}
		]
	}`

	root, err := DecodeNode([]byte(doc))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	src := root.Children[0]
	if src.Kind != KindDirectory || src.Data.Path != "/src" {
		t.Errorf("unexpected child: %+v", src)
	}
	if len(src.Children) != 1 || src.Children[0].Data.Name != "main.go" {
		t.Errorf("unexpected grandchildren: %+v", src.Children)
	}
}

// TestDecodeRejectsInvalid covers corrupt and contract-violating inputs.
func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"no fileData no empty", `{"children": []}`},
		{"non-expandable directory", `{"fileData": {"path": "/d", "name": "d", "type": "directory", "expandable": false}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeNode([]byte(tt.data)); err == nil {
				t.Error("expected decode error, got nil")
			}
		})
	}
}

// TestDecodeFileList parses the remote listing shape: a bare JSON array of
// file-data records.
func TestDecodeFileList(t *testing.T) {
	data := `[
		{"path": "/a", "name": "a", "type": "directory", "expandable": true},
		{"path": "/b.txt", "name": "b.txt", "type": "text/plain", "expandable": false}
	]`

	entries, err := DecodeFileList([]byte(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path != "/a" || !entries[0].Expandable {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
}
