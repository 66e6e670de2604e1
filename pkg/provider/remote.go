package provider

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/vanderheijden86/fern/pkg/model"
)

// maxErrorBodySize caps how much of an error response body is read for the
// server-provided message.
const maxErrorBodySize = 4 << 10

// Remote asks a listing service for the children of a path. The service
// returns a JSON array of file-data records (no children); each record
// becomes a childless node whose own children are fetched lazily when it
// is expanded.
type Remote struct {
	baseURL string
	client  *http.Client
}

// RemoteConfig holds remote provider configuration.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewRemote creates a provider for the listing service at baseURL.
// Requests go to <baseURL><path>.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Remote{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Load is a no-op; the remote provider is ready immediately.
func (p *Remote) Load(_ context.Context) error {
	return nil
}

// List requests the listing for path. Non-2xx responses become a
// *StatusError carrying the server-provided message.
func (p *Remote) List(ctx context.Context, path string) ([]*model.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build listing request for %q: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{
			Code:    resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing for %q: %w", path, err)
	}
	entries, err := model.DecodeFileList(body)
	if err != nil {
		return nil, fmt.Errorf("listing for %q: %w", path, err)
	}

	nodes := make([]*model.Node, 0, len(entries))
	for _, entry := range entries {
		nodes = append(nodes, model.NewNode(entry))
	}
	SortNodes(nodes)
	return nodes, nil
}
