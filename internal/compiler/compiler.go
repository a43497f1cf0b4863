// Package compiler turns ashlang Function Definitions into an Instruction
// Stream for the stack machine.
//
// Compilation starts at an entry function and pulls in callees on first
// reference. Every reachable function is compiled exactly once into its own
// chunk; the chunks are concatenated in discovery order, entry first.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ashlang/internal/ast"
	"ashlang/internal/locator"
	"ashlang/internal/parser"
	"ashlang/internal/source"
	"ashlang/internal/trace"
)

// Resolver finds the unit that defines a function name.
type Resolver interface {
	Resolve(name string) (*locator.Unit, error)
	FileSet() *source.FileSet
}

type Options struct {
	// StackRegisters is how many stack elements dup/swap can address.
	// Zero means 16.
	StackRegisters int
}

type Compiler struct {
	res  Resolver
	opts Options

	nextLabel uint32
	graph     *CallGraph
	files     map[source.FileID]*ast.File
	chunks    map[string][]Instruction
}

func New(res Resolver, opts Options) *Compiler {
	if opts.StackRegisters <= 0 {
		opts.StackRegisters = 16
	}
	return &Compiler{res: res, opts: opts, graph: newCallGraph()}
}

// Graph returns the call graph of the last Compile run.
func (c *Compiler) Graph() *CallGraph { return c.graph }

// Compile compiles entry and everything it reaches. Any failure aborts the
// run; no partial stream is returned.
func (c *Compiler) Compile(ctx context.Context, entry string) (*Stream, error) {
	c.nextLabel = 0
	c.graph = newCallGraph()
	c.files = make(map[source.FileID]*ast.File)
	c.chunks = make(map[string][]Instruction)

	ctx, span := trace.StartSpan(ctx, trace.ScopeStage, "compile")
	span.With("entry", entry)

	root, err := c.discover(entry, nil)
	if err != nil {
		span.End("error")
		return nil, err
	}
	if err := c.compileNode(ctx, root); err != nil {
		span.End("error")
		return nil, err
	}

	stream := &Stream{Entry: infoOf(root)}
	for _, n := range c.graph.order {
		if n.State != Done {
			span.End("error")
			return nil, fmt.Errorf("function %q left in state %s", n.Name, n.State)
		}
		stream.Functions = append(stream.Functions, infoOf(n))
		if err := stream.append(c.chunks[n.Name]...); err != nil {
			span.End("error")
			return nil, err
		}
	}
	stream.seal()

	span.With("functions", strconv.Itoa(len(stream.Functions)))
	span.With("instructions", strconv.Itoa(stream.Len()))
	span.End("")
	return stream, nil
}

func infoOf(n *Node) FuncInfo {
	return FuncInfo{
		Name:    n.Name,
		Label:   n.Label,
		Arity:   n.Func.Arity(),
		Returns: n.Func.Returns(),
		Path:    n.Unit.Path,
	}
}

func (c *Compiler) mint(kind LabelKind, hint string) Label {
	l := Label{ID: c.nextLabel, Kind: kind, Hint: hint}
	c.nextLabel++
	return l
}

// discover returns the node for name, creating it on first reference.
// site is the call expression span, nil for the entry.
func (c *Compiler) discover(name string, site *source.Span) (*Node, error) {
	if n, ok := c.graph.nodes[name]; ok {
		return n, nil
	}
	unit, err := c.res.Resolve(name)
	if err != nil {
		var unres *locator.UnresolvedModuleError
		if site != nil && errors.As(err, &unres) {
			return nil, &locator.UnresolvedModuleError{Name: unres.Name, Site: site}
		}
		return nil, err
	}
	file, err := c.parse(unit)
	if err != nil {
		return nil, err
	}
	fn := file.Func(name)
	if fn == nil {
		return nil, &locator.UnresolvedModuleError{Name: name, Site: site}
	}
	if _, reserved := builtins[name]; reserved {
		return nil, &ReservedNameError{Name: name, Site: fn.NameSpan}
	}
	n := &Node{
		Name:  name,
		Label: c.mint(FuncEntry, name),
		State: NotStarted,
		Unit:  unit,
		Func:  fn,
	}
	c.graph.add(n)
	return n, nil
}

// parse parses a unit once per Compile run.
func (c *Compiler) parse(u *locator.Unit) (*ast.File, error) {
	if f, ok := c.files[u.File]; ok {
		return f, nil
	}
	f, err := parser.Parse(c.res.FileSet(), u.File)
	if err != nil {
		return nil, err
	}
	c.files[u.File] = f
	return f, nil
}

func (c *Compiler) compileNode(ctx context.Context, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.State = InProgress

	ctx, span := trace.StartSpan(ctx, trace.ScopeFunc, "fn:"+n.Name)
	g := &funcGen{ctx: ctx, c: c, node: n}
	if err := g.run(); err != nil {
		span.End("error")
		return err
	}
	c.chunks[n.Name] = g.out
	n.State = Done
	span.With("instructions", strconv.Itoa(len(g.out))).End("")
	return nil
}
