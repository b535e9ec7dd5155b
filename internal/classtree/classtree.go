package classtree

import (
	"fmt"

	"github.com/funvibe/bantam/internal/ast"
	"github.com/funvibe/bantam/internal/symbols"
)

// FieldTable maps field names (plus the this/super pseudo-fields) to type names.
type FieldTable = symbols.SymbolTable[string]

// MethodTable maps method names to their declarations.
type MethodTable = symbols.SymbolTable[*ast.Method]

// ClassMap holds every class node by name, in registration order.
type ClassMap struct {
	order []string
	nodes map[string]*Node
}

func NewClassMap() *ClassMap {
	return &ClassMap{nodes: make(map[string]*Node)}
}

// Add registers n under its name. It returns false, leaving the map
// unchanged, when the name is already taken.
func (m *ClassMap) Add(n *Node) bool {
	if _, exists := m.nodes[n.Name()]; exists {
		return false
	}
	m.nodes[n.Name()] = n
	m.order = append(m.order, n.Name())
	return true
}

// Lookup returns the node for name, or nil.
func (m *ClassMap) Lookup(name string) *Node {
	return m.nodes[name]
}

func (m *ClassMap) Len() int {
	return len(m.order)
}

// Nodes returns all nodes in registration order.
func (m *ClassMap) Nodes() []*Node {
	nodes := make([]*Node, 0, len(m.order))
	for _, name := range m.order {
		nodes = append(nodes, m.nodes[name])
	}
	return nodes
}

// Names returns all class names in registration order.
func (m *ClassMap) Names() []string {
	return append([]string(nil), m.order...)
}

// Clear removes every class.
func (m *ClassMap) Clear() {
	m.order = nil
	m.nodes = make(map[string]*Node)
}

// Node is one class in the inheritance tree.
type Node struct {
	decl       *ast.Class
	builtin    bool
	extendable bool
	classMap   *ClassMap

	parent         *Node
	children       []*Node
	numDescendants int

	fields  *FieldTable
	methods *MethodTable
}

// NewNode creates an unattached node for decl. The node is not registered in
// classMap; callers do that with ClassMap.Add.
func NewNode(decl *ast.Class, builtin, extendable bool, classMap *ClassMap) *Node {
	return &Node{
		decl:       decl,
		builtin:    builtin,
		extendable: extendable,
		classMap:   classMap,
		fields:     symbols.New[string](),
		methods:    symbols.New[*ast.Method](),
	}
}

func (n *Node) Name() string        { return n.decl.Name }
func (n *Node) AST() *ast.Class     { return n.decl }
func (n *Node) IsBuiltin() bool     { return n.builtin }
func (n *Node) IsExtendable() bool  { return n.extendable }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) NumChildren() int    { return len(n.children) }
func (n *Node) NumDescendants() int { return n.numDescendants }
func (n *Node) Fields() *FieldTable { return n.fields }

func (n *Node) Methods() *MethodTable { return n.methods }

// Children returns the direct subclasses in the order they were attached.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// LookupClass finds any class in the node's class map, or returns nil.
func (n *Node) LookupClass(name string) *Node {
	return n.classMap.Lookup(name)
}

func (n *Node) ClassMap() *ClassMap {
	return n.classMap
}

// SetParent attaches n under parent. Setting the current parent again does
// nothing. Otherwise n leaves its old parent, its symbol tables chain to the
// new parent's tables, and descendant counts move with it.
func (n *Node) SetParent(parent *Node) {
	if parent == nil {
		panic(fmt.Sprintf("classtree: SetParent: nil parent for class %s", n.Name()))
	}
	if n.parent == parent {
		return
	}

	if old := n.parent; old != nil {
		old.removeChild(n)
		n.adjustAncestors(old, -(n.numDescendants + 1))
	}

	n.parent = parent
	n.fields.SetParent(parent.fields)
	n.methods.SetParent(parent.methods)
	parent.AddChild(n)
	n.adjustAncestors(parent, n.numDescendants+1)
}

// adjustAncestors adds delta to from and each of its ancestors. The walk
// stops at n itself or at any node already visited, so a malformed chain
// cannot loop.
func (n *Node) adjustAncestors(from *Node, delta int) {
	visited := make(map[*Node]bool)
	for c := from; c != nil && c != n && !visited[c]; c = c.parent {
		c.numDescendants += delta
		visited[c] = true
	}
}

// AddChild records child as a subclass of n, making n its parent if it is
// not already.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic(fmt.Sprintf("classtree: AddChild: nil child for class %s", n.Name()))
	}
	for _, c := range n.children {
		if c == child {
			return
		}
	}
	n.children = append(n.children, child)
	if child.parent != n {
		child.SetParent(n)
	}
}

// RemoveChild drops child from n's children and reports whether it was there.
// The child's parent pointer is left alone.
func (n *Node) RemoveChild(child *Node) bool {
	return n.removeChild(child)
}

func (n *Node) removeChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// Ancestors returns the parent chain of n, nearest first. It stops before
// repeating a node.
func (n *Node) Ancestors() []*Node {
	var chain []*Node
	visited := map[*Node]bool{n: true}
	for c := n.parent; c != nil && !visited[c]; c = c.parent {
		chain = append(chain, c)
		visited[c] = true
	}
	return chain
}

// IsDescendantOf reports whether other is n or one of n's ancestors.
func (n *Node) IsDescendantOf(other *Node) bool {
	if n == other {
		return true
	}
	for _, a := range n.Ancestors() {
		if a == other {
			return true
		}
	}
	return false
}

// Recount recomputes the descendant count of n and every node below it from
// the children lists, and returns n's count.
func (n *Node) Recount() int {
	return n.recount(make(map[*Node]bool))
}

func (n *Node) recount(visited map[*Node]bool) int {
	visited[n] = true
	total := 0
	for _, c := range n.children {
		if visited[c] {
			continue
		}
		total += c.recount(visited) + 1
	}
	n.numDescendants = total
	return total
}

// Walk visits n and its subtree depth-first, children in attachment order.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0, make(map[*Node]bool))
}

func (n *Node) walk(fn func(*Node, int), depth int, visited map[*Node]bool) {
	if visited[n] {
		return
	}
	visited[n] = true
	fn(n, depth)
	for _, c := range n.children {
		c.walk(fn, depth+1, visited)
	}
}

func (n *Node) String() string {
	parent := "<nil>"
	if n.parent != nil {
		parent = n.parent.Name()
	}
	return n.Name() + ":" + parent
}
