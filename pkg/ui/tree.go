// tree.go - Hierarchical view over the persisted file tree.
//
// The view renders whatever state the store currently holds: a node is
// "expanded" exactly when its children have been fetched and attached, so
// restoring a previous session deep-renders the restored branches without
// re-fetching anything. Expansion state itself lives in the store; this
// model only owns cursor position and the set of in-flight fetches.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/fern/pkg/model"
	"github.com/vanderheijden86/fern/pkg/store"
)

// NodeState is the per-node presentation state.
type NodeState int

const (
	// NodeCollapsed means no children container is rendered.
	NodeCollapsed NodeState = iota
	// NodeExpanding means a listing request is in flight (loader shown).
	NodeExpanding
	// NodeExpanded means fetched children are rendered beneath the node.
	NodeExpanded
)

// treeRow is one visible line: a node plus its rendered position.
type treeRow struct {
	node   *model.Node
	depth  int
	prefix string // branch characters, unstyled
}

// TreeModel manages the tree view state over a store-owned node graph.
type TreeModel struct {
	store *store.Store
	theme Theme

	rows   []treeRow
	cursor int

	// expanding tracks paths with a listing request in flight. Doubles as
	// request de-duplication: a path already expanding is never re-fetched.
	expanding map[string]bool

	width  int
	height int
	offset int // first visible row
}

// NewTreeModel creates a tree view over the given store.
func NewTreeModel(s *store.Store, theme Theme) TreeModel {
	t := TreeModel{
		store:     s,
		theme:     theme,
		expanding: make(map[string]bool),
	}
	t.Rebuild()
	return t
}

// SetSize updates the available dimensions for the tree view.
func (t *TreeModel) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// Rebuild re-flattens the store's current root into visible rows. The
// cursor is clamped to the new bounds.
func (t *TreeModel) Rebuild() {
	t.rows = t.rows[:0]
	t.appendRows(t.store.CurrentState(), 0, "", "")
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// appendRows adds a node and its fetched descendants, building branch
// prefixes as it descends.
func (t *TreeModel) appendRows(node *model.Node, depth int, branch, descent string) {
	if node == nil {
		return
	}
	t.rows = append(t.rows, treeRow{node: node, depth: depth, prefix: branch})
	for i, child := range node.Children {
		last := i == len(node.Children)-1
		childBranch := descent + "├── "
		childDescent := descent + "│   "
		if last {
			childBranch = descent + "└── "
			childDescent = descent + "    "
		}
		t.appendRows(child, depth+1, childBranch, childDescent)
	}
}

// State returns the presentation state of the node at path.
func (t *TreeModel) State(path string) NodeState {
	if t.expanding[path] {
		return NodeExpanding
	}
	node, err := t.store.Tree().Get(path)
	if err != nil || len(node.Children) == 0 {
		return NodeCollapsed
	}
	return NodeExpanded
}

// MarkExpanding records an in-flight listing request for path. Returns
// false when one is already in flight (rapid double-activation).
func (t *TreeModel) MarkExpanding(path string) bool {
	if t.expanding[path] {
		return false
	}
	t.expanding[path] = true
	return true
}

// DoneExpanding clears the in-flight marker for path.
func (t *TreeModel) DoneExpanding(path string) {
	delete(t.expanding, path)
}

// IsExpanding reports whether a listing request is in flight for path.
func (t *TreeModel) IsExpanding(path string) bool {
	return t.expanding[path]
}

// SelectedNode returns the currently selected node, or nil.
func (t *TreeModel) SelectedNode() *model.Node {
	if t.cursor >= 0 && t.cursor < len(t.rows) {
		return t.rows[t.cursor].node
	}
	return nil
}

// SelectedPath returns the path of the selected node, or "" for none (and
// for the root, whose path is "").
func (t *TreeModel) SelectedPath() string {
	if node := t.SelectedNode(); node != nil && !node.IsEmpty() {
		return node.Data.Path
	}
	return ""
}

// SelectByPath moves the cursor to the node with the given path.
// Returns true if found.
func (t *TreeModel) SelectByPath(path string) bool {
	for i, row := range t.rows {
		if !row.node.IsEmpty() && row.node.Data.Path == path {
			t.cursor = i
			return true
		}
	}
	return false
}

// MoveDown moves the cursor down one row.
func (t *TreeModel) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
}

// MoveUp moves the cursor up one row.
func (t *TreeModel) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// JumpToTop moves the cursor to the first row.
func (t *TreeModel) JumpToTop() {
	t.cursor = 0
}

// JumpToBottom moves the cursor to the last row.
func (t *TreeModel) JumpToBottom() {
	if len(t.rows) > 0 {
		t.cursor = len(t.rows) - 1
	}
}

// JumpToParent moves the cursor to the parent of the selected node.
func (t *TreeModel) JumpToParent() {
	if t.cursor <= 0 || t.cursor >= len(t.rows) {
		return
	}
	depth := t.rows[t.cursor].depth
	for i := t.cursor - 1; i >= 0; i-- {
		if t.rows[i].depth < depth {
			t.cursor = i
			return
		}
	}
}

// PageDown moves the cursor down by half a viewport.
func (t *TreeModel) PageDown() {
	page := t.height / 2
	if page < 1 {
		page = 5
	}
	t.cursor += page
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// PageUp moves the cursor up by half a viewport.
func (t *TreeModel) PageUp() {
	page := t.height / 2
	if page < 1 {
		page = 5
	}
	t.cursor -= page
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// RowCount returns the number of visible rows.
func (t *TreeModel) RowCount() int {
	return len(t.rows)
}

// IndexedCount returns the number of indexed paths in the store's tree.
func (t *TreeModel) IndexedCount() int {
	return t.store.Tree().Len()
}

// View renders the visible slice of the tree.
func (t *TreeModel) View() string {
	if len(t.rows) == 0 {
		return t.theme.MutedText.Render("Nothing to display.")
	}

	t.scrollToCursor()
	start, end := t.visibleRange()

	var sb strings.Builder
	for i := start; i < end; i++ {
		line := t.renderRow(t.rows[i])
		if i == t.cursor {
			line = t.theme.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// scrollToCursor keeps the cursor inside the viewport.
func (t *TreeModel) scrollToCursor() {
	visible := t.height
	if visible <= 0 {
		visible = 20
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+visible {
		t.offset = t.cursor - visible + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// visibleRange returns the [start, end) row span covered by the viewport.
func (t *TreeModel) visibleRange() (int, int) {
	visible := t.height
	if visible <= 0 {
		visible = 20
	}
	start := t.offset
	end := start + visible
	if end > len(t.rows) {
		end = len(t.rows)
	}
	if start > end {
		start = end
	}
	return start, end
}

// renderRow renders a single tree row with branch characters and styling.
func (t *TreeModel) renderRow(row treeRow) string {
	r := t.theme.Renderer
	var sb strings.Builder

	sb.WriteString(t.theme.MutedText.Render(row.prefix))

	node := row.node
	if node.IsEmpty() {
		sb.WriteString(t.theme.MutedText.Render("∅ (empty)"))
		return sb.String()
	}

	// Expand/collapse indicator
	indicator := t.indicatorFor(node)
	sb.WriteString(r.NewStyle().Foreground(t.theme.Secondary).Render(indicator))
	sb.WriteString(" ")

	// Type icon
	icon, iconColor := t.theme.GetTypeIcon(node.Data.Type, node.Data.Expandable)
	sb.WriteString(r.NewStyle().Foreground(iconColor).Render(icon))
	sb.WriteString(" ")

	// Name, truncated to the remaining width
	name := node.Data.DisplayName()
	maxName := t.width - lipgloss.Width(row.prefix) - 8
	if maxName < 12 {
		maxName = 12
	}
	if runewidth.StringWidth(name) > maxName {
		name = runewidth.Truncate(name, maxName, "…")
	}
	if node.Kind == model.KindDirectory {
		sb.WriteString(t.theme.PrimaryBold.Render(name))
	} else {
		sb.WriteString(t.theme.Base.Render(name))
	}

	if t.expanding[node.Data.Path] {
		sb.WriteString(t.theme.MutedText.Render(" ⋯"))
	}

	return sb.String()
}

// indicatorFor picks the affordance glyph for a node.
func (t *TreeModel) indicatorFor(node *model.Node) string {
	if !node.Expandable() {
		return "•"
	}
	switch t.State(node.Data.Path) {
	case NodeExpanded:
		return "▾"
	case NodeExpanding:
		return "◌"
	default:
		return "▸"
	}
}

// StatusLine summarizes the view for the status bar.
func (t *TreeModel) StatusLine() string {
	return fmt.Sprintf("%d shown · %d indexed", len(t.rows), t.IndexedCount())
}
