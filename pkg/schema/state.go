package schema

import (
	"strconv"
	"strings"
)

// Get reads a value relative to the scope it was created from. A leading
// "../" climbs to the parent scope (a repeater item's parent is the scope
// holding the repeater) and a leading "/" starts at the root.
type Get func(path string) any

// Set writes a value relative to the scope it was created from, using the
// same path rules as Get. Intermediate maps are created on demand.
type Set func(path string, value any)

// Callback runs after a field's state changed.
type Callback func(update *StateUpdate)

// StateUpdate is handed to after-change callbacks. Get and Set are bound to
// the scope of the changed field; Data is always the root data map.
type StateUpdate struct {
	Field    string
	Value    any
	Get      Get
	Set      Set
	Data     map[string]any
	Record   any
	Scope    *Scope
	Repeater string
	Index    int
}

// State wraps a data map and hands out scope handles into it. Writes go to
// the wrapped map so callers observe them after the callback returns.
type State struct {
	data map[string]any
}

// NewState wraps data. A nil map is replaced by an empty one.
func NewState(data map[string]any) *State {
	if data == nil {
		data = make(map[string]any)
	}
	return &State{data: data}
}

// Data returns the wrapped map.
func (s *State) Data() map[string]any {
	return s.data
}

// Root returns the scope bound to the top of the data map.
func (s *State) Root() *Scope {
	return &Scope{state: s}
}

// Scope returns a handle bound to the dotted path below the root. The
// returned scope's parent is the root.
func (s *State) Scope(path string) *Scope {
	return s.Root().Child(splitPath(path)...)
}

// Scope is a handle bound to a sub-path of a State.
type Scope struct {
	state  *State
	parent *Scope
	base   []string
}

// Child returns a scope bound to segments below s whose parent is s.
func (s *Scope) Child(segments ...string) *Scope {
	base := make([]string, 0, len(s.base)+len(segments))
	base = append(base, s.base...)
	base = append(base, segments...)
	return &Scope{state: s.state, parent: s, base: base}
}

// Path returns the dotted path of the scope relative to the root.
func (s *Scope) Path() string {
	return strings.Join(s.base, ".")
}

// Get reads path relative to the scope.
func (s *Scope) Get(path string) any {
	target, rel := s.resolve(path)
	container, ok := target.container()
	if !ok {
		return nil
	}
	if rel == "" {
		return container
	}
	value, _ := lookupPath(container, rel)
	return value
}

// Set writes value at path relative to the scope.
func (s *Scope) Set(path string, value any) {
	target, rel := s.resolve(path)
	if rel == "" {
		return
	}
	segments := append(append([]string(nil), target.base...), splitPath(rel)...)
	setPath(s.state.data, segments, value)
}

// Getter returns s.Get as a Get.
func (s *Scope) Getter() Get { return s.Get }

// Setter returns s.Set as a Set.
func (s *Scope) Setter() Set { return s.Set }

// Data returns the map the scope is bound to, or nil when the path does not
// resolve to a map.
func (s *Scope) Data() map[string]any {
	container, _ := s.container()
	return container
}

func (s *Scope) container() (map[string]any, bool) {
	if len(s.base) == 0 {
		return s.state.data, true
	}
	value, ok := walkPath(s.state.data, s.base)
	if !ok {
		return nil, false
	}
	m, ok := value.(map[string]any)
	return m, ok
}

func (s *Scope) resolve(path string) (*Scope, string) {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "/") {
		root := s
		for root.parent != nil {
			root = root.parent
		}
		return root, strings.TrimPrefix(path, "/")
	}
	current := s
	for strings.HasPrefix(path, "../") {
		path = strings.TrimPrefix(path, "../")
		if current.parent != nil {
			current = current.parent
		}
	}
	if path == ".." {
		path = ""
		if current.parent != nil {
			current = current.parent
		}
	}
	return current, path
}

func splitPath(path string) []string {
	path = strings.Trim(strings.TrimSpace(path), ".")
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// lookupPath reads path from data. An exact key wins over a dotted
// traversal so flat keys such as "address.city" keep working.
func lookupPath(data map[string]any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	if value, ok := data[path]; ok {
		return value, true
	}
	if !strings.Contains(path, ".") {
		return nil, false
	}
	return walkPath(data, splitPath(path))
}

func walkPath(data map[string]any, segments []string) (any, bool) {
	var current any = data
	for _, segment := range segments {
		next, ok := step(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(current any, segment string) (any, bool) {
	switch typed := current.(type) {
	case map[string]any:
		value, ok := typed[segment]
		return value, ok
	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	case []map[string]any:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	}
	return nil, false
}

// setPath writes value at segments below data. Missing maps are created;
// list indexes must already exist.
func setPath(data map[string]any, segments []string, value any) bool {
	if data == nil || len(segments) == 0 {
		return false
	}
	var current any = data
	for i, segment := range segments {
		last := i == len(segments)-1
		switch typed := current.(type) {
		case map[string]any:
			if last {
				typed[segment] = value
				return true
			}
			next, ok := typed[segment]
			if !ok || next == nil {
				created := make(map[string]any)
				typed[segment] = created
				next = created
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(typed) {
				return false
			}
			if last {
				typed[idx] = value
				return true
			}
			if typed[idx] == nil {
				typed[idx] = make(map[string]any)
			}
			current = typed[idx]
		case []map[string]any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(typed) {
				return false
			}
			if last {
				m, ok := value.(map[string]any)
				if !ok {
					return false
				}
				typed[idx] = m
				return true
			}
			if typed[idx] == nil {
				typed[idx] = make(map[string]any)
			}
			current = typed[idx]
		default:
			return false
		}
	}
	return false
}
