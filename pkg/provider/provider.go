// Package provider supplies the children of a tree path on demand.
//
// Two interchangeable strategies implement the same interface: a static
// provider that decodes one JSON document describing the whole tree, and a
// remote provider that asks a listing service per path. The presentation
// layer selects one by configuration, never by duck typing.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/vanderheijden86/fern/pkg/model"
)

// Provider supplies children for tree paths.
//
// Load prepares the provider (fetching the static document, or nothing for
// the remote variant). List returns the children of the node at path,
// sorted, without retaining references the caller could alias: returned
// nodes belong to the caller.
type Provider interface {
	Load(ctx context.Context) error
	List(ctx context.Context, path string) ([]*model.Node, error)
}

// StatusError is a listing-service failure carrying the server-provided
// message. Expected codes (the service defines them as meaningful) are
// surfaced to the user verbatim; everything else is logged as unexpected.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("listing failed (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("listing failed (%d)", e.Code)
}

// Expected reports whether the failure is one the service defines as
// meaningful for the user: not-found and not-implemented.
func (e *StatusError) Expected() bool {
	return e.Code == http.StatusNotFound || e.Code == http.StatusNotImplemented
}

// SortNodes orders children for display: directories first, then other
// expandable items, then plain files. The sort is stable, so equal-weight
// items keep their original order. Empty sentinels sort last.
func SortNodes(nodes []*model.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return sortWeight(nodes[i]) < sortWeight(nodes[j])
	})
}

func sortWeight(n *model.Node) int {
	if n == nil || n.IsEmpty() {
		return 3
	}
	return n.Data.SortWeight()
}
