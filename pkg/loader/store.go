package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formschema/pkg/schema"
)

var (
	// ErrSchemaNotFound is returned by Build for unknown names.
	ErrSchemaNotFound = errors.New("loader: schema not found")
	// ErrUnknownCallback is returned when a document names a callback that
	// was never registered.
	ErrUnknownCallback = errors.New("loader: unknown callback")
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCallbacks sets the registry used to resolve afterStateUpdated names.
func WithCallbacks(registry *CallbackRegistry) StoreOption {
	return func(s *Store) {
		if registry != nil {
			s.callbacks = registry
		}
	}
}

// WithSchemaOptions appends options applied to every schema built.
func WithSchemaOptions(opts ...schema.Option) StoreOption {
	return func(s *Store) {
		s.schemaOpts = append(s.schemaOpts, opts...)
	}
}

// Store holds named definitions and builds a fresh schema tree per call.
// It is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	definitions map[string]Definition
	callbacks   *CallbackRegistry
	schemaOpts  []schema.Option
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		definitions: make(map[string]Definition),
		callbacks:   NewCallbackRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// LoadFS walks fsys and adds every .json/.yaml/.yml document. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS, opts ...StoreOption) (*Store, error) {
	store := NewStore(opts...)
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", path, err)
		}
		doc, err := NewDocument(SourceFromFS(path), raw)
		if err != nil {
			return err
		}
		return store.Add(doc)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadDir loads every definition below dir on disk.
func LoadDir(dir string, opts ...StoreOption) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if !info.IsDir() {
		raw, err := os.ReadFile(dir)
		if err != nil {
			return nil, fmt.Errorf("loader: read %s: %w", dir, err)
		}
		doc, err := NewDocument(SourceFromFile(dir), raw)
		if err != nil {
			return nil, err
		}
		store := NewStore(opts...)
		return store, store.Add(doc)
	}
	return LoadFS(os.DirFS(dir), opts...)
}

// Add parses doc and registers its definitions. Names must be unique across
// the store; a duplicate leaves the store unchanged.
func (s *Store) Add(doc Document) error {
	raw, err := doc.decode()
	if err != nil {
		return err
	}
	defs, err := decodeDefinitions(raw, doc.Location())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range defs {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("loader: %s defines an empty schema name", doc.Location())
		}
		if existing, ok := s.definitions[trimmed]; ok {
			return fmt.Errorf("loader: duplicate schema %q (%s and %s)", trimmed, existing.Source, doc.Location())
		}
	}
	for name, def := range defs {
		def.Name = strings.TrimSpace(name)
		def.Source = doc.Location()
		s.definitions[def.Name] = def
	}
	return nil
}

// Put registers a definition built in code or imported from another format.
// The definition is validated by building it once.
func (s *Store) Put(def Definition) error {
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return fmt.Errorf("loader: definition from %q has an empty schema name", def.Source)
	}
	s.mu.RLock()
	callbacks := s.callbacks
	existing, dup := s.definitions[def.Name]
	s.mu.RUnlock()
	if dup {
		return fmt.Errorf("loader: duplicate schema %q (%s and %s)", def.Name, existing.Source, def.Source)
	}
	b := builder{schema: def.Name, callbacks: callbacks}
	if _, err := b.nodes(def.Components, "components"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.definitions[def.Name]; ok {
		return fmt.Errorf("loader: duplicate schema %q (%s and %s)", def.Name, existing.Source, def.Source)
	}
	s.definitions[def.Name] = def
	return nil
}

// Names returns the definition names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Definition returns the raw definition for name.
func (s *Store) Definition(name string) (Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[name]
	return def, ok
}

// Callbacks returns the registry used by Build.
func (s *Store) Callbacks() *CallbackRegistry {
	return s.callbacks
}

// Build constructs a new schema tree for name. Store-level schema options
// apply first, then opts.
func (s *Store) Build(name string, opts ...schema.Option) (*schema.Schema, error) {
	def, ok := s.Definition(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}

	b := builder{schema: name, callbacks: s.callbacks}
	nodes, err := b.nodes(def.Components, "components")
	if err != nil {
		return nil, err
	}

	all := append(append([]schema.Option(nil), s.schemaOpts...), opts...)
	root := schema.New(name, all...).
		Model(def.Model).
		Resource(def.Resource).
		Schema(nodes...)
	if def.Label != "" {
		root.Label(def.Label)
	}
	return root, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
