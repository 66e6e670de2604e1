// Package ui provides the terminal user interface for fern: a lazily
// expanding file tree backed by a data provider and a persisted state
// store.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/fern/pkg/debug"
	"github.com/vanderheijden86/fern/pkg/model"
	"github.com/vanderheijden86/fern/pkg/provider"
	"github.com/vanderheijden86/fern/pkg/store"
)

// statusClearAfter is how long transient status messages stay visible.
const statusClearAfter = 4 * time.Second

// listResultMsg delivers the outcome of a listing request.
type listResultMsg struct {
	path  string
	nodes []*model.Node
	err   error
}

// ReloadMsg reports a static-document reload (sent from the file watcher
// via Program.Send).
type ReloadMsg struct {
	Err error
}

// clearStatusMsg expires a transient status message.
type clearStatusMsg struct {
	generation int
}

// Model is the top-level bubbletea model: it orchestrates click-driven
// expand/collapse against the provider and the store, and renders the
// result.
type Model struct {
	store    *store.Store
	provider provider.Provider
	tree     TreeModel
	theme    Theme
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	showHelp bool

	status    string
	statusErr bool
	statusGen int
}

// NewModel builds the UI over an initialized store and a loaded provider.
// The store's current state renders eagerly, restoring previously expanded
// branches without re-fetching them.
func NewModel(s *store.Store, p provider.Provider) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.SecondaryText

	return Model{
		store:    s,
		provider: p,
		tree:     NewTreeModel(s, theme),
		theme:    theme,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// listCmd issues a listing request for path off the UI loop.
func listCmd(p provider.Provider, path string) tea.Cmd {
	return func() tea.Msg {
		nodes, err := p.List(context.Background(), path)
		return listResultMsg{path: path, nodes: nodes, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tree.SetSize(msg.Width, msg.Height-2) // header + status bar
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case listResultMsg:
		return m.handleListResult(msg)

	case ReloadMsg:
		if msg.Err != nil {
			log.Printf("warning: document reload failed: %v", msg.Err)
			return m.setStatus("document reload failed", true)
		}
		return m.setStatus("document reloaded", false)

	case clearStatusMsg:
		if msg.generation == m.statusGen {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.anyExpanding() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key dismisses the help overlay
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "j", "down":
		m.tree.MoveDown()
	case "k", "up":
		m.tree.MoveUp()
	case "g", "home":
		m.tree.JumpToTop()
	case "G", "end":
		m.tree.JumpToBottom()
	case "ctrl+d", "pgdown":
		m.tree.PageDown()
	case "ctrl+u", "pgup":
		m.tree.PageUp()

	case "enter", "l", "right", " ":
		return m.activateSelected()

	case "h", "left":
		return m.collapseOrJumpToParent()

	case "y":
		return m.copySelectedPath()

	case "R":
		if err := m.store.Reset(); err != nil {
			log.Printf("warning: state reset failed: %v", err)
			return m.setStatus("state reset failed", true)
		}
		m.tree.Rebuild()
		return m.setStatus("state reset", false)
	}

	return m, nil
}

// activateSelected drives the per-node state machine:
// Collapsed → Expanding (listing request issued), Expanded → Collapsed.
// An already-Expanding node presents no affordance to re-trigger; the
// in-flight marker de-duplicates rapid double-activation by path.
func (m Model) activateSelected() (tea.Model, tea.Cmd) {
	node := m.tree.SelectedNode()
	if node == nil || !node.Expandable() {
		return m, nil
	}
	path := node.Data.Path

	switch m.tree.State(path) {
	case NodeExpanded:
		// Collapse: remove the subtree from index and persisted storage.
		if err := m.store.ClearNode(path); err != nil {
			log.Printf("warning: collapse %q failed: %v", path, err)
			return m.setStatus("collapse failed", true)
		}
		m.tree.Rebuild()
		return m, nil

	case NodeExpanding:
		return m, nil

	default:
		if !m.tree.MarkExpanding(path) {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, listCmd(m.provider, path))
	}
}

// collapseOrJumpToParent collapses an expanded node, otherwise moves to
// its parent.
func (m Model) collapseOrJumpToParent() (tea.Model, tea.Cmd) {
	node := m.tree.SelectedNode()
	if node != nil && !node.IsEmpty() && m.tree.State(node.Data.Path) == NodeExpanded {
		if err := m.store.ClearNode(node.Data.Path); err != nil {
			log.Printf("warning: collapse %q failed: %v", node.Data.Path, err)
			return m.setStatus("collapse failed", true)
		}
		m.tree.Rebuild()
		return m, nil
	}
	m.tree.JumpToParent()
	return m, nil
}

// handleListResult finishes the Expanding transition. A late result for a
// path that is no longer expanding (collapsed ancestor, state reset) is
// dropped as a no-op.
func (m Model) handleListResult(msg listResultMsg) (tea.Model, tea.Cmd) {
	if !m.tree.IsExpanding(msg.path) {
		debug.Log("dropping stale listing result for %q", msg.path)
		return m, nil
	}
	m.tree.DoneExpanding(msg.path)

	if msg.err != nil {
		// Error path: loader removed, nothing persisted, node stays collapsed.
		var statusErr *provider.StatusError
		if errors.As(msg.err, &statusErr) && statusErr.Expected() {
			text := statusErr.Message
			if text == "" {
				text = statusErr.Error()
			}
			return m.setStatus(text, true)
		}
		log.Printf("warning: listing %q failed: %v", msg.path, msg.err)
		return m.setStatus("listing failed", true)
	}

	// Shallow-copy the provider's nodes before they enter the store, so
	// the rendered/persisted copy never aliases the provider's objects.
	children := make([]*model.Node, 0, len(msg.nodes))
	for _, n := range msg.nodes {
		children = append(children, n.ShallowClone())
	}
	if len(children) == 0 {
		// Render "this directory has no children" instead of an empty
		// expandable.
		children = []*model.Node{model.NewEmptyNode()}
	}

	if _, err := m.store.AddNodes(msg.path, children); err != nil {
		// The path can vanish between request and response; tolerate.
		log.Printf("warning: attach children to %q failed: %v", msg.path, err)
		return m, nil
	}
	m.tree.Rebuild()
	return m, nil
}

// copySelectedPath puts the selected node's path on the system clipboard.
func (m Model) copySelectedPath() (tea.Model, tea.Cmd) {
	node := m.tree.SelectedNode()
	if node == nil || node.IsEmpty() {
		return m, nil
	}
	path := node.Data.Path
	if path == "" {
		path = "/"
	}
	if err := clipboard.WriteAll(path); err != nil {
		debug.Log("clipboard write failed: %v", err)
		return m.setStatus("clipboard unavailable", true)
	}
	return m.setStatus(fmt.Sprintf("copied %s", path), false)
}

// setStatus shows a transient status message with auto-expiry.
func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.status = text
	m.statusErr = isErr
	m.statusGen++
	gen := m.statusGen
	return m, tea.Tick(statusClearAfter, func(time.Time) tea.Msg {
		return clearStatusMsg{generation: gen}
	})
}

// anyExpanding reports whether any listing request is in flight.
func (m Model) anyExpanding() bool {
	return len(m.tree.expanding) > 0
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return RenderHelp(m.theme, m.width, m.height)
	}

	var sb strings.Builder
	sb.WriteString(m.theme.Header.Render(fmt.Sprintf("fern · %s", m.store.ID())))
	sb.WriteString("\n")
	sb.WriteString(m.tree.View())
	sb.WriteString(m.statusBar())
	return sb.String()
}

// statusBar renders the bottom line: counts, in-flight indicator, and any
// transient message.
func (m Model) statusBar() string {
	left := m.tree.StatusLine()
	if m.anyExpanding() {
		left = m.spinner.View() + " " + left
	}

	line := m.theme.MutedText.Render(left)
	if m.status != "" {
		msg := m.status
		if m.statusErr {
			line += "  " + m.theme.ErrorText.Render(msg)
		} else {
			line += "  " + m.theme.SecondaryText.Render(msg)
		}
	} else {
		line += m.theme.MutedText.Render("  ? help · q quit")
	}
	return line
}
