package provider

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/vanderheijden86/fern/pkg/model"
	"github.com/vanderheijden86/fern/pkg/tree"
	"github.com/vanderheijden86/fern/pkg/watcher"
)

// Static serves listings from a single JSON document describing the entire
// tree, decoded once at Load into an in-memory indexed tree. Optionally the
// document is watched for changes and reloaded, with a callback notifying
// the UI.
type Static struct {
	path string

	mu   sync.RWMutex
	tree *tree.Indexed

	watch    *watcher.Watcher
	onReload func(error)
}

// StaticOption configures a Static provider.
type StaticOption func(*Static)

// WithReloadNotify enables live reload: the document is watched and
// re-decoded on change, and fn is invoked with the reload result.
func WithReloadNotify(fn func(error)) StaticOption {
	return func(p *Static) {
		p.onReload = fn
	}
}

// NewStatic creates a provider backed by the JSON document at path.
func NewStatic(path string, opts ...StaticOption) *Static {
	p := &Static{path: path}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load decodes the document and builds the provider's own indexed tree.
// When reload notification is configured, it also starts the file watcher.
func (p *Static) Load(ctx context.Context) error {
	if err := p.reload(); err != nil {
		return err
	}
	if p.onReload == nil || p.watch != nil {
		return nil
	}

	w, err := watcher.New(p.path, watcher.WithOnChange(func() {
		p.onReload(p.reload())
	}))
	if err != nil {
		return fmt.Errorf("watch %s: %w", p.path, err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch %s: %w", p.path, err)
	}
	p.watch = w
	return nil
}

// Close stops the document watcher, if any.
func (p *Static) Close() {
	if p.watch != nil {
		p.watch.Stop()
	}
}

// reload re-decodes the document and swaps the in-memory tree.
func (p *Static) reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read document %s: %w", p.path, err)
	}
	root, err := model.DecodeNode(data)
	if err != nil {
		return fmt.Errorf("document %s: %w", p.path, err)
	}

	p.mu.Lock()
	p.tree = tree.New(root)
	p.mu.Unlock()
	return nil
}

// List serves children purely from the in-memory tree. The result is a
// deep copy, sorted; the provider's own nodes are never handed out.
func (p *Static) List(_ context.Context, path string) ([]*model.Node, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.tree == nil {
		return nil, fmt.Errorf("static provider not loaded")
	}
	node, err := p.tree.Get(path)
	if err != nil {
		return nil, err
	}

	children := make([]*model.Node, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, child.Clone())
	}
	SortNodes(children)
	return children, nil
}
