package ast

// Inspect visits every statement and expression reachable from body in
// source order. Returning false from fn skips the node's children.
func Inspect(body []Stmt, fn func(node any) bool) {
	for _, s := range body {
		inspectStmt(s, fn)
	}
}

func inspectStmt(s Stmt, fn func(node any) bool) {
	if !fn(s) {
		return
	}
	switch s := s.(type) {
	case *LetStmt:
		inspectExpr(s.Value, fn)
	case *AssignStmt:
		inspectExpr(s.Value, fn)
	case *IfStmt:
		inspectExpr(s.Cond, fn)
		Inspect(s.Then, fn)
		Inspect(s.Else, fn)
	case *WhileStmt:
		inspectExpr(s.Cond, fn)
		Inspect(s.Body, fn)
	case *ReturnStmt:
		inspectExpr(s.Value, fn)
	case *ExprStmt:
		inspectExpr(s.X, fn)
	}
}

func inspectExpr(e Expr, fn func(node any) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch e := e.(type) {
	case *CallExpr:
		for _, a := range e.Args {
			inspectExpr(a, fn)
		}
	case *UnaryExpr:
		inspectExpr(e.X, fn)
	case *BinaryExpr:
		inspectExpr(e.Left, fn)
		inspectExpr(e.Right, fn)
	}
}

// Calls returns the call expressions in body in source order.
func Calls(body []Stmt) []*CallExpr {
	var out []*CallExpr
	Inspect(body, func(n any) bool {
		if c, ok := n.(*CallExpr); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}
