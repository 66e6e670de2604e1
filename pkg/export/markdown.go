// Package export renders the persisted tree outside the TUI session.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanderheijden86/fern/pkg/model"
)

// GenerateMarkdown creates a markdown listing of the tree's current state.
// Unfetched branches render as collapsed entries; the Empty sentinel
// renders as an explicit "(empty)" marker.
func GenerateMarkdown(root *model.Node, title string) (string, error) {
	if root == nil {
		return "", fmt.Errorf("no tree state to export")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC1123)))

	dirs, files := 0, 0
	countEntries(root, &dirs, &files)
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Directories**: %d\n", dirs))
	sb.WriteString(fmt.Sprintf("- **Files**: %d\n\n", files))

	sb.WriteString("## Tree\n\n")
	writeNode(&sb, root, 0)
	sb.WriteString("\n")

	return sb.String(), nil
}

// ExportMarkdown writes the markdown listing to a file.
func ExportMarkdown(root *model.Node, title, path string) error {
	md, err := GenerateMarkdown(root, title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}

func countEntries(n *model.Node, dirs, files *int) {
	switch n.Kind {
	case model.KindDirectory:
		*dirs++
	case model.KindFile:
		*files++
	}
	for _, child := range n.Children {
		countEntries(child, dirs, files)
	}
}

func writeNode(sb *strings.Builder, n *model.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n.Kind {
	case model.KindEmpty:
		sb.WriteString(fmt.Sprintf("%s- *(empty)*\n", indent))
		return
	case model.KindDirectory:
		sb.WriteString(fmt.Sprintf("%s- **%s**\n", indent, n.Data.DisplayName()))
	default:
		sb.WriteString(fmt.Sprintf("%s- %s\n", indent, n.Data.DisplayName()))
	}

	for _, child := range n.Children {
		writeNode(sb, child, depth+1)
	}
}
