package compiler

import (
	"context"
	"slices"

	"ashlang/internal/ast"
	"ashlang/internal/field"
	"ashlang/internal/source"
)

// maxPop is the largest argument pop accepts.
const maxPop = 5

type blockKind uint8

const (
	blockThen     blockKind = iota // if without else
	blockThenFlag                  // then-branch of if/else, entered with the branch flag on top
	blockElse
	blockLoop
)

// pendingBlock is a branch or loop body emitted after the function body.
type pendingBlock struct {
	kind  blockKind
	label Label
	cond  ast.Expr
	body  []ast.Stmt
	slots []string
}

// funcGen generates one function. The frame (parameters then locals) sits at
// the bottom of the function's stack window; depth counts the frame plus any
// temporaries pushed while evaluating an expression.
type funcGen struct {
	ctx  context.Context
	c    *Compiler
	node *Node

	out    []Instruction
	slots  []string
	depth  int
	blocks []pendingBlock
}

func (g *funcGen) name() string { return g.node.Name }

func (g *funcGen) emit(in ...Instruction) {
	for _, i := range in {
		g.depth += i.stackEffect()
		g.out = append(g.out, i)
	}
}

func (g *funcGen) emitPop(n int) {
	for n > 0 {
		k := min(n, maxPop)
		g.emit(opN(OpPop, k))
		n -= k
	}
}

func (g *funcGen) slotOf(name string) int {
	for i := len(g.slots) - 1; i >= 0; i-- {
		if g.slots[i] == name {
			return i
		}
	}
	return -1
}

// reach checks that a stack element k positions below the top is addressable.
func (g *funcGen) reach(k int, symbol string, site source.Span) error {
	if k >= g.c.opts.StackRegisters {
		return &StackTooDeepError{Function: g.name(), Symbol: symbol, Depth: k, Site: site}
	}
	return nil
}

func (g *funcGen) run() error {
	fn := g.node.Func
	for _, p := range fn.Params {
		if slices.Contains(g.slots, p.Name) {
			return &DuplicateParamError{Function: fn.Name, Param: p.Name, Site: p.Span}
		}
		g.slots = append(g.slots, p.Name)
	}
	g.depth = len(g.slots)
	g.out = append(g.out, labelDef(g.node.Label))

	var ret *ast.ReturnStmt
	body := fn.Body
	if fn.Returns() == 1 {
		ret = body[len(body)-1].(*ast.ReturnStmt)
		body = body[:len(body)-1]
	}
	for _, st := range body {
		if err := g.stmt(st); err != nil {
			return err
		}
	}

	frame := len(g.slots)
	if ret != nil {
		if err := g.value(ret.Value); err != nil {
			return err
		}
		if frame > 0 {
			if err := g.reach(frame, "", ret.Span); err != nil {
				return err
			}
			g.emit(opN(OpSwap, frame))
			g.emitPop(frame)
		}
	} else {
		g.emitPop(frame)
	}
	g.emit(op(OpReturn))

	// blocks may queue further blocks while they are generated
	for i := 0; i < len(g.blocks); i++ {
		if err := g.block(g.blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g *funcGen) deferBlock(kind blockKind, lk LabelKind, cond ast.Expr, body []ast.Stmt) Label {
	l := g.c.mint(lk, g.name())
	g.blocks = append(g.blocks, pendingBlock{
		kind:  kind,
		label: l,
		cond:  cond,
		body:  body,
		slots: slices.Clone(g.slots),
	})
	return l
}

func (g *funcGen) block(b pendingBlock) error {
	g.slots = b.slots
	g.depth = len(g.slots)
	base := len(g.slots)
	g.out = append(g.out, labelDef(b.label))

	switch b.kind {
	case blockThenFlag:
		g.depth++
		g.emit(opN(OpPop, 1))
	case blockLoop:
		if err := g.value(b.cond); err != nil {
			return err
		}
		g.emit(push(field.Zero), op(OpEq), op(OpSkiz), op(OpReturn))
	}

	for _, st := range b.body {
		if err := g.stmt(st); err != nil {
			return err
		}
	}
	g.emitPop(len(g.slots) - base)

	switch b.kind {
	case blockThenFlag:
		g.emit(push(field.Zero), op(OpReturn))
	case blockLoop:
		g.emit(op(OpRecurse))
	default:
		g.emit(op(OpReturn))
	}
	return nil
}

func (g *funcGen) stmt(st ast.Stmt) error {
	if err := g.ctx.Err(); err != nil {
		return err
	}
	switch st := st.(type) {
	case *ast.LetStmt:
		if g.slotOf(st.Name) >= 0 {
			return &DuplicateSymbolError{Function: g.name(), Symbol: st.Name, Site: st.NameSpan}
		}
		if err := g.value(st.Value); err != nil {
			return err
		}
		g.slots = append(g.slots, st.Name)
		return nil

	case *ast.AssignStmt:
		s := g.slotOf(st.Name)
		if s < 0 {
			return &UnresolvedSymbolError{Function: g.name(), Symbol: st.Name, Site: st.NameSpan}
		}
		if err := g.value(st.Value); err != nil {
			return err
		}
		k := g.depth - 1 - s
		if err := g.reach(k, st.Name, st.NameSpan); err != nil {
			return err
		}
		g.emit(opN(OpSwap, k), opN(OpPop, 1))
		return nil

	case *ast.IfStmt:
		if !st.HasElse() {
			if err := g.value(st.Cond); err != nil {
				return err
			}
			then := g.deferBlock(blockThen, Then, nil, st.Then)
			g.emit(op(OpSkiz), call(then))
			return nil
		}
		g.emit(push(field.One))
		if err := g.value(st.Cond); err != nil {
			return err
		}
		then := g.deferBlock(blockThenFlag, Then, nil, st.Then)
		els := g.deferBlock(blockElse, Else, nil, st.Else)
		g.emit(op(OpSkiz), call(then), op(OpSkiz), call(els))
		return nil

	case *ast.WhileStmt:
		loop := g.deferBlock(blockLoop, Loop, st.Cond, st.Body)
		g.emit(call(loop))
		return nil

	case *ast.ReturnStmt:
		return &MisplacedReturnError{Function: g.name(), Site: st.Span}

	case *ast.ExprStmt:
		n, err := g.expr(st.X)
		if err != nil {
			return err
		}
		g.emitPop(n)
		return nil
	}
	return nil
}

// value generates e and requires it to leave exactly one element.
func (g *funcGen) value(e ast.Expr) error {
	n, err := g.expr(e)
	if err != nil {
		return err
	}
	if n == 0 {
		c := e.(*ast.CallExpr)
		return &VoidValueError{Callee: c.Callee, Site: c.Span}
	}
	return nil
}

// expr generates e and returns how many elements it leaves (0 or 1).
func (g *funcGen) expr(e ast.Expr) (int, error) {
	switch e := e.(type) {
	case *ast.LitExpr:
		g.emit(push(e.Value))
		return 1, nil

	case *ast.IdentExpr:
		s := g.slotOf(e.Name)
		if s < 0 {
			return 0, &UnresolvedSymbolError{Function: g.name(), Symbol: e.Name, Site: e.Span}
		}
		k := g.depth - 1 - s
		if err := g.reach(k, e.Name, e.Span); err != nil {
			return 0, err
		}
		g.emit(opN(OpDup, k))
		return 1, nil

	case *ast.UnaryExpr:
		if lit, ok := e.X.(*ast.LitExpr); ok {
			g.emit(push(lit.Value.Neg()))
			return 1, nil
		}
		if err := g.value(e.X); err != nil {
			return 0, err
		}
		g.emit(push(field.MinusOne), op(OpMul))
		return 1, nil

	case *ast.BinaryExpr:
		if err := g.value(e.Left); err != nil {
			return 0, err
		}
		if err := g.value(e.Right); err != nil {
			return 0, err
		}
		g.binary(e.Op)
		return 1, nil

	case *ast.CallExpr:
		return g.call(e)
	}
	return 0, nil
}

func (g *funcGen) binary(o ast.ExprBinaryOp) {
	switch o {
	case ast.ExprBinaryAdd:
		g.emit(op(OpAdd))
	case ast.ExprBinarySub:
		g.emit(push(field.MinusOne), op(OpMul), op(OpAdd))
	case ast.ExprBinaryMul:
		g.emit(op(OpMul))
	case ast.ExprBinaryDiv:
		g.emit(op(OpInvert), op(OpMul))
	case ast.ExprBinaryEq:
		g.emit(op(OpEq))
	case ast.ExprBinaryNotEq:
		g.emit(op(OpEq), push(field.Zero), op(OpEq))
	case ast.ExprBinaryLt:
		// lt compares the top against the element below it
		g.emit(opN(OpSwap, 1), op(OpLt))
	}
}

func (g *funcGen) call(e *ast.CallExpr) (int, error) {
	if b, ok := builtins[e.Callee]; ok {
		if len(e.Args) != b.arity {
			return 0, &ArityMismatchError{Callee: e.Callee, Expected: b.arity, Got: len(e.Args), Site: e.Span}
		}
		for _, a := range e.Args {
			if err := g.value(a); err != nil {
				return 0, err
			}
		}
		g.emit(b.code...)
		return b.returns, nil
	}

	site := e.CalleeSpan
	callee, err := g.c.discover(e.Callee, &site)
	if err != nil {
		return 0, err
	}
	if want := callee.Func.Arity(); want != len(e.Args) {
		return 0, &ArityMismatchError{Callee: e.Callee, Expected: want, Got: len(e.Args), Site: e.Span}
	}
	g.c.graph.addEdge(g.name(), callee.Name, e.Span)
	if callee.State == NotStarted {
		if err := g.c.compileNode(g.ctx, callee); err != nil {
			return 0, err
		}
	}

	for _, a := range e.Args {
		if err := g.value(a); err != nil {
			return 0, err
		}
	}
	returns := callee.Func.Returns()
	g.emit(call(callee.Label))
	g.depth += returns - len(e.Args)
	return returns, nil
}
