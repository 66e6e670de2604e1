package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/fern/pkg/model"
)

func sampleRoot() *model.Node {
	root := model.NewRoot()
	docs := model.NewNode(model.FileData{Path: "/docs", Name: "docs", Type: model.TypeDirectory, Expandable: true})
	docs.Children = []*model.Node{
		model.NewNode(model.FileData{Path: "/docs/a.txt", Name: "a.txt", Type: "text/plain"}),
	}
	hollow := model.NewNode(model.FileData{Path: "/hollow", Name: "hollow", Type: model.TypeDirectory, Expandable: true})
	hollow.Children = []*model.Node{model.NewEmptyNode()}
	root.Children = []*model.Node{docs, hollow}
	return root
}

func TestGenerateMarkdown(t *testing.T) {
	md, err := GenerateMarkdown(sampleRoot(), "my tree")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, want := range []string{
		"# my tree",
		"- **Directories**: 3",
		"- **Files**: 1",
		"- **/**",
		"  - **docs**",
		"    - a.txt",
		"  - **hollow**",
		"    - *(empty)*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in output:\n%s", want, md)
		}
	}
}

func TestGenerateMarkdownNilRoot(t *testing.T) {
	if _, err := GenerateMarkdown(nil, "x"); err == nil {
		t.Error("expected error for nil root")
	}
}

func TestExportMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.md")
	if err := ExportMarkdown(sampleRoot(), "exported", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "# exported") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}
