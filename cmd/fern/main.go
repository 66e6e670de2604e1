package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/fern/pkg/config"
	"github.com/vanderheijden86/fern/pkg/export"
	"github.com/vanderheijden86/fern/pkg/provider"
	"github.com/vanderheijden86/fern/pkg/store"
	"github.com/vanderheijden86/fern/pkg/ui"
)

const version = "0.2.0"

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file path (default: .fern/config.yaml, discovered upward from cwd)")
	docPath := flag.String("doc", "", "Static JSON document describing the tree (static source)")
	baseURL := flag.String("url", "", "Listing service base URL (remote source)")
	treeID := flag.String("tree", "", "Tree identifier for persisted state (default: main)")
	stateBackend := flag.String("state", "", "State backend: file, sqlite, or memory")
	stateDir := flag.String("state-dir", "", "State directory (default: .fern)")
	watch := flag.Bool("watch", false, "Reload the static document when it changes on disk")
	exportMD := flag.String("export-md", "", "Export the persisted tree to a Markdown file and exit")
	resetState := flag.Bool("reset-state", false, "Discard the persisted tree state and exit")
	flag.Parse()

	if *help {
		fmt.Println("Usage: fern [options]")
		fmt.Println("\nAn interactive, lazily-expanding file tree viewer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("fern %s\n", version)
		os.Exit(0)
	}

	cfg := resolveConfig(*configPath, *docPath, *baseURL, *treeID, *stateBackend, *stateDir, *watch)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run with --help for usage.")
		os.Exit(1)
	}

	storage, cleanup, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	st, err := store.New(storage, cfg.TreeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *resetState {
		if err := st.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Reset persisted state for tree %q\n", cfg.TreeID)
		return
	}

	if *exportMD != "" {
		title := fmt.Sprintf("fern tree: %s", cfg.TreeID)
		if err := export.ExportMarkdown(st.CurrentState(), title, *exportMD); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported tree to %s\n", *exportMD)
		return
	}

	runTUI(cfg, st)
}

// resolveConfig merges the config file (explicit path, or discovered
// .fern/config.yaml) with flag overrides. Flags win.
func resolveConfig(configPath, docPath, baseURL, treeID, stateBackend, stateDir string, watch bool) config.Config {
	var cfg config.Config

	switch {
	case configPath != "":
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	default:
		if root, ok := config.DetectProjectRoot(); ok {
			if loaded, err := config.LoadProject(root); err == nil {
				cfg = loaded
				// State lives next to the discovered config unless overridden
				if cfg.State.Dir == config.ConfigDirName {
					cfg.State.Dir = filepath.Join(root, config.ConfigDirName)
				}
			}
		}
	}

	if docPath != "" {
		cfg.Source.Type = config.SourceStatic
		cfg.Source.Document = docPath
	}
	if baseURL != "" {
		cfg.Source.Type = config.SourceRemote
		cfg.Source.BaseURL = baseURL
	}
	if watch {
		cfg.Source.Watch = true
	}
	if treeID != "" {
		cfg.TreeID = treeID
	}
	if stateBackend != "" {
		cfg.State.Backend = stateBackend
	}
	if stateDir != "" {
		cfg.State.Dir = stateDir
	}

	cfg.ApplyDefaults()
	return cfg
}

// openStorage builds the configured persistence backend.
func openStorage(cfg config.Config) (store.Storage, func(), error) {
	switch cfg.State.Backend {
	case config.BackendMemory:
		return store.NewMemoryStorage(), func() {}, nil

	case config.BackendSQLite:
		path := filepath.Join(cfg.State.Dir, "fern-state.db")
		if err := os.MkdirAll(cfg.State.Dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create state directory %s: %w", cfg.State.Dir, err)
		}
		db, err := store.NewSQLiteStorage(path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil

	default:
		return store.NewFileStorage(cfg.State.Dir), func() {}, nil
	}
}

// runTUI wires the provider to the state store and runs the program.
func runTUI(cfg config.Config, st *store.Store) {
	var prog *tea.Program

	var prov provider.Provider
	switch cfg.Source.Type {
	case config.SourceRemote:
		prov = provider.NewRemote(provider.RemoteConfig{BaseURL: cfg.Source.BaseURL})
	default:
		opts := []provider.StaticOption{}
		if cfg.Source.Watch {
			opts = append(opts, provider.WithReloadNotify(func(err error) {
				if prog != nil {
					prog.Send(ui.ReloadMsg{Err: err})
				}
			}))
		}
		sp := provider.NewStatic(cfg.Source.Document, opts...)
		defer sp.Close()
		prov = sp
	}

	m := ui.NewModel(st, prov)
	prog = tea.NewProgram(m, tea.WithAltScreen())

	// Load after the program exists so reload notifications have a target.
	if err := prov.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}
