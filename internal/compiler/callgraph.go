package compiler

import (
	"ashlang/internal/ast"
	"ashlang/internal/locator"
	"ashlang/internal/source"
)

type NodeState uint8

const (
	NotStarted NodeState = iota
	InProgress
	Done
)

func (s NodeState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Node is one function known to the compiler.
type Node struct {
	Name  string
	Label Label
	State NodeState
	Unit  *locator.Unit
	Func  *ast.Func
}

// Edge is one call site.
type Edge struct {
	Caller string
	Callee string
	Site   source.Span
}

// CallGraph tracks the functions reachable from the entry.
type CallGraph struct {
	nodes map[string]*Node
	order []*Node
	edges []Edge
}

func newCallGraph() *CallGraph {
	return &CallGraph{nodes: make(map[string]*Node)}
}

func (g *CallGraph) add(n *Node) {
	g.nodes[n.Name] = n
	g.order = append(g.order, n)
}

func (g *CallGraph) addEdge(caller, callee string, site source.Span) {
	g.edges = append(g.edges, Edge{Caller: caller, Callee: callee, Site: site})
}

// Node returns the node for name.
func (g *CallGraph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns nodes in discovery order.
func (g *CallGraph) Nodes() []*Node {
	return append([]*Node(nil), g.order...)
}

// Edges returns all call sites in compilation order.
func (g *CallGraph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// CallSites counts the call sites from caller to callee.
func (g *CallGraph) CallSites(caller, callee string) int {
	n := 0
	for _, e := range g.edges {
		if e.Caller == caller && e.Callee == callee {
			n++
		}
	}
	return n
}

// Callees returns the distinct functions caller calls, in first-call order.
func (g *CallGraph) Callees(caller string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range g.edges {
		if e.Caller == caller && !seen[e.Callee] {
			seen[e.Callee] = true
			out = append(out, e.Callee)
		}
	}
	return out
}
