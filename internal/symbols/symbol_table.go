// symbols/symbol_table.go - Scoped name tables with inheritance chaining
//
// A SymbolTable is a stack of scopes plus an optional parent table. Class
// field and method tables chain to the table of the superclass, so a lookup
// that misses every local scope continues in the inherited members.
//
// Scope levels are numbered across the whole chain: the outermost scope of
// the root ancestor is level 1 for ScopeLevel/CurrScopeLevel, and level 0 for
// the explicit-level operations (LookupLevel, PeekLevel, SetLevel).
//
// Misuse (adding before a scope is entered, exiting with no scope, setting an
// unbound name) is a bug in the caller and panics.

package symbols

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

type scope[V any] map[string]V

// SymbolTable maps names to values of type V through a stack of scopes.
type SymbolTable[V any] struct {
	scopes []scope[V]
	parent *SymbolTable[V]
}

// New creates a table with no scopes and no parent.
func New[V any]() *SymbolTable[V] {
	return &SymbolTable[V]{}
}

// SetParent sets the table consulted when a lookup misses every local scope.
func (s *SymbolTable[V]) SetParent(parent *SymbolTable[V]) {
	s.parent = parent
}

func (s *SymbolTable[V]) Parent() *SymbolTable[V] {
	return s.parent
}

// EnterScope pushes a fresh, empty scope.
func (s *SymbolTable[V]) EnterScope() {
	s.scopes = append(s.scopes, scope[V]{})
}

// ExitScope pops the innermost scope.
func (s *SymbolTable[V]) ExitScope() {
	if len(s.scopes) == 0 {
		panic("symbols: ExitScope: no scope to exit")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *SymbolTable[V]) mustHaveScope(op string) {
	if len(s.scopes) == 0 {
		panic(fmt.Sprintf("symbols: %s: must enter a scope first", op))
	}
}

func (s *SymbolTable[V]) innermost() scope[V] {
	return s.scopes[len(s.scopes)-1]
}

// Add binds name in the innermost scope, replacing any binding already there.
func (s *SymbolTable[V]) Add(name string, value V) {
	s.mustHaveScope("Add")
	s.innermost()[name] = value
}

// Lookup searches local scopes innermost first, then the parent chain.
func (s *SymbolTable[V]) Lookup(name string) (V, bool) {
	s.mustHaveScope("Lookup")
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i][name]; ok {
			return v, true
		}
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	var zero V
	return zero, false
}

// LookupLocal searches only this table's scopes, ignoring the parent chain.
func (s *SymbolTable[V]) LookupLocal(name string) (V, bool) {
	s.mustHaveScope("LookupLocal")
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i][name]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// chain returns the tables from the root ancestor down to s.
func (s *SymbolTable[V]) chain() []*SymbolTable[V] {
	var tables []*SymbolTable[V]
	for st := s; st != nil; st = st.parent {
		tables = append(tables, st)
	}
	for i, j := 0, len(tables)-1; i < j; i, j = i+1, j-1 {
		tables[i], tables[j] = tables[j], tables[i]
	}
	return tables
}

// locate maps a 0-based chain level to the table owning it and the index of
// the scope inside that table.
func (s *SymbolTable[V]) locate(op string, level int) (*SymbolTable[V], int) {
	s.mustHaveScope(op)
	if last := s.CurrScopeLevel(); level < 0 || level >= last {
		panic(fmt.Sprintf("symbols: %s: level %d is not between 0 and %d", op, level, last-1))
	}
	for _, st := range s.chain() {
		if level < len(st.scopes) {
			return st, level
		}
		level -= len(st.scopes)
	}
	panic(fmt.Sprintf("symbols: %s: level %d out of range", op, level))
}

// LookupLevel searches the scope at level and the scopes below it in the
// owning table, then that table's parent chain.
func (s *SymbolTable[V]) LookupLevel(name string, level int) (V, bool) {
	st, idx := s.locate("LookupLevel", level)
	for i := idx; i >= 0; i-- {
		if v, ok := st.scopes[i][name]; ok {
			return v, true
		}
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	var zero V
	return zero, false
}

// Peek looks only in the innermost scope.
func (s *SymbolTable[V]) Peek(name string) (V, bool) {
	s.mustHaveScope("Peek")
	v, ok := s.innermost()[name]
	return v, ok
}

// PeekLevel looks only in the scope at level.
func (s *SymbolTable[V]) PeekLevel(name string, level int) (V, bool) {
	st, idx := s.locate("PeekLevel", level)
	v, ok := st.scopes[idx][name]
	return v, ok
}

// Set rebinds an existing name in the nearest scope that holds it.
func (s *SymbolTable[V]) Set(name string, value V) {
	s.mustHaveScope("Set")
	for st := s; st != nil; st = st.parent {
		for i := len(st.scopes) - 1; i >= 0; i-- {
			if _, ok := st.scopes[i][name]; ok {
				st.scopes[i][name] = value
				return
			}
		}
	}
	panic(fmt.Sprintf("symbols: Set: %q is not in the symbol table", name))
}

// SetLevel rebinds an existing name, searching outward from level.
func (s *SymbolTable[V]) SetLevel(name string, value V, level int) {
	st, idx := s.locate("SetLevel", level)
	for i := idx; i >= 0; i-- {
		if _, ok := st.scopes[i][name]; ok {
			st.scopes[i][name] = value
			return
		}
	}
	if st.parent != nil {
		st.parent.Set(name, value)
		return
	}
	panic(fmt.Sprintf("symbols: SetLevel: %q is not in the symbol table", name))
}

// ScopeLevel returns the 1-based chain level that binds name, or -1.
func (s *SymbolTable[V]) ScopeLevel(name string) int {
	s.mustHaveScope("ScopeLevel")
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if _, ok := s.scopes[i][name]; ok {
			if s.parent == nil {
				return i + 1
			}
			return i + 1 + s.parent.CurrScopeLevel()
		}
	}
	if s.parent != nil {
		return s.parent.ScopeLevel(name)
	}
	return -1
}

// CurrScopeLevel returns the number of scopes across the whole chain.
func (s *SymbolTable[V]) CurrScopeLevel() int {
	n := len(s.scopes)
	if s.parent != nil {
		n += s.parent.CurrScopeLevel()
	}
	return n
}

// Size counts bindings across the whole chain.
func (s *SymbolTable[V]) Size() int {
	n := 0
	for _, sc := range s.scopes {
		n += len(sc)
	}
	if s.parent != nil {
		n += s.parent.Size()
	}
	return n
}

// CurrScopeSize counts bindings in the innermost scope.
func (s *SymbolTable[V]) CurrScopeSize() int {
	if len(s.scopes) == 0 {
		return 0
	}
	return len(s.innermost())
}

// Clone copies the scope stack. Scope maps are copied; values and the parent
// pointer are shared.
func (s *SymbolTable[V]) Clone() *SymbolTable[V] {
	c := &SymbolTable[V]{parent: s.parent, scopes: make([]scope[V], len(s.scopes))}
	for i, sc := range s.scopes {
		cp := make(scope[V], len(sc))
		for k, v := range sc {
			cp[k] = v
		}
		c.scopes[i] = cp
	}
	return c
}

// Dump writes every scope of the chain, root ancestor first, one binding per
// line in name order.
func (s *SymbolTable[V]) Dump(w io.Writer) error {
	level := 0
	for _, st := range s.chain() {
		for _, sc := range st.scopes {
			level++
			names := make([]string, 0, len(sc))
			for name := range sc {
				names = append(names, name)
			}
			sort.Strings(names)

			var b strings.Builder
			fmt.Fprintf(&b, "scope %d:\n", level)
			for _, name := range names {
				fmt.Fprintf(&b, "  %s: %v\n", name, sc[name])
			}
			if _, err := io.WriteString(w, b.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
