// Package compiler - Type inference for Python declarations.
//
// Python writes no declarations, but Java and C++ need one for every
// variable, field and function result. This pass derives them from the
// semantic information before lowering.
//
// Inference rules (conservative - anything uncertain is Object):
//   - A variable's type is the join of the types recorded for each of
//     its assignment targets. Only literal values narrow a target, so
//     x = 1; x = 2 is Int and x = 1; x = y is Object. A list of
//     literals narrows to an array: xs = [1, 2] is Array<Int>.
//   - A function's result is the join of its returned values, Void when
//     it returns nothing, Object when bare and valued returns mix.
//   - An instance field is any name assigned through the receiver of a
//     method (self.x = ...); its type is the join of the assigned values.
//   - A variable first bound inside a nested block (if, while, for) is
//     hoisted: declared without a value at the start of its function.
//
// Annotated code (Java, C++, annotated Python) keeps its written types
// and needs no inference.
package compiler

import (
	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/semantic"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// Field is an instance field discovered from receiver assignments.
type Field struct {
	Name string
	Type types.Type
	Line int
}

// TypeInfo holds inference results for a program.
type TypeInfo struct {
	// Vars maps Python variables to their declaration type.
	Vars map[*semantic.Symbol]types.Type

	// Results maps unannotated Python functions to their result type.
	Results map[*ast.FunctionDef]types.Type

	// Fields lists, per Python class, the fields assigned through the
	// receiver in first-assignment order.
	Fields map[*ast.ClassDef][]Field

	// Hoisted lists, per function (or the *ast.Program for top-level
	// code), the variables first bound inside a nested block.
	Hoisted map[ast.Node][]*semantic.Symbol
}

// NewTypeInfo creates an empty TypeInfo.
func NewTypeInfo() *TypeInfo {
	return &TypeInfo{
		Vars:    make(map[*semantic.Symbol]types.Type),
		Results: make(map[*ast.FunctionDef]types.Type),
		Fields:  make(map[*ast.ClassDef][]Field),
		Hoisted: make(map[ast.Node][]*semantic.Symbol),
	}
}

// VarType returns the inferred type of sym, or Object.
func (ti *TypeInfo) VarType(sym *semantic.Symbol) types.Type {
	if t, ok := ti.Vars[sym]; ok {
		return t
	}
	return types.Object
}

// IsHoisted reports whether sym is declared ahead of its first binding.
func (ti *TypeInfo) IsHoisted(owner ast.Node, sym *semantic.Symbol) bool {
	for _, s := range ti.Hoisted[owner] {
		if s == sym {
			return true
		}
	}
	return false
}

// InferTypes runs inference over prog. Only Python programs produce
// entries; for other languages the result is empty.
func InferTypes(prog *ast.Program, info *semantic.Info, lang token.Language) *TypeInfo {
	ti := NewTypeInfo()
	if lang != token.Python {
		return ti
	}
	in := &inferrer{info: info, ti: ti}
	in.stmts(prog, prog.Body, 0)
	return ti
}

// inferrer walks one program.
type inferrer struct {
	info *semantic.Info
	ti   *TypeInfo

	// Context tracking
	fn        *ast.FunctionDef
	returns   []types.Type
	bare      bool // fn has a return without value
	receiver  *semantic.Symbol
	recvClass *ast.ClassDef // Class of the current method's receiver
	class     *ast.ClassDef
}

func (in *inferrer) stmts(owner ast.Node, stmts []ast.Stmt, depth int) {
	for _, s := range stmts {
		in.stmt(owner, s, depth)
	}
}

func (in *inferrer) block(owner ast.Node, b *ast.Block, depth int) {
	if b != nil {
		in.stmts(owner, b.Stmts, depth)
	}
}

func (in *inferrer) stmt(owner ast.Node, stmt ast.Stmt, depth int) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		in.function(s)

	case *ast.ClassDef:
		saveClass := in.class
		in.class = s
		in.stmts(s, s.Body, 0)
		in.class = saveClass

	case *ast.ExprStmt:
		if a, ok := s.X.(*ast.Assignment); ok {
			in.assignment(owner, a, depth)
		}

	case *ast.Block:
		in.block(owner, s, depth+1)

	case *ast.If:
		// The main guard is unwrapped by lowering, so its body stays at
		// the enclosing depth.
		if depth == 0 && isMainGuard(s) {
			in.block(owner, s.Then, depth)
			return
		}
		in.block(owner, s.Then, depth+1)
		if s.Else != nil {
			in.stmt(owner, s.Else, depth+1)
		}

	case *ast.While:
		in.block(owner, s.Body, depth+1)

	case *ast.For:
		in.block(owner, s.Body, depth+1)

	case *ast.ForIn:
		in.block(owner, s.Body, depth+1)

	case *ast.Return:
		if in.fn == nil {
			return
		}
		if s.Value == nil {
			in.bare = true
			return
		}
		in.returns = append(in.returns, in.info.TypeOf(s.Value))
	}
}

func (in *inferrer) function(fn *ast.FunctionDef) {
	saveFn, saveReturns, saveBare := in.fn, in.returns, in.bare
	saveRecv, saveRecvClass := in.receiver, in.recvClass
	defer func() {
		in.fn, in.returns, in.bare = saveFn, saveReturns, saveBare
		in.receiver, in.recvClass = saveRecv, saveRecvClass
	}()

	in.fn, in.returns, in.bare = fn, nil, false
	in.receiver, in.recvClass = nil, nil
	if in.class != nil && !fn.HasModifier("staticmethod") && len(fn.Params) > 0 {
		in.receiver, in.recvClass = in.info.Params[fn.Params[0]], in.class
	}
	saveClass := in.class
	in.class = nil
	in.block(fn, fn.Body, 0)
	in.class = saveClass

	if fn.Result != nil {
		return
	}
	in.ti.Results[fn] = in.result(fn)
}

func (in *inferrer) result(fn *ast.FunctionDef) types.Type {
	if fn.Name == "__init__" || len(in.returns) == 0 {
		return types.Void
	}
	if in.bare {
		return types.Object
	}
	t := in.returns[0]
	for _, u := range in.returns[1:] {
		t = types.Join(t, u)
	}
	return t
}

func (in *inferrer) assignment(owner ast.Node, a *ast.Assignment, depth int) {
	if inner, ok := a.Value.(*ast.Assignment); ok {
		in.assignment(owner, inner, depth)
	}
	if a.Op != token.ASSIGN {
		return
	}
	switch target := a.Target.(type) {
	case *ast.Identifier:
		sym := in.info.Uses[target]
		if sym == nil {
			return
		}
		in.join(sym, in.info.TypeOf(target))
		if in.info.Defs[a] == sym && depth > 0 && !in.ti.IsHoisted(owner, sym) {
			in.ti.Hoisted[owner] = append(in.ti.Hoisted[owner], sym)
		}

	case *ast.Attribute:
		recv, ok := target.X.(*ast.Identifier)
		if !ok || in.receiver == nil || in.info.Uses[recv] != in.receiver {
			return
		}
		in.field(target.Name, in.info.TypeOf(a.Value), target.Pos().Line)
	}
}

func (in *inferrer) join(sym *semantic.Symbol, t types.Type) {
	if prev, ok := in.ti.Vars[sym]; ok {
		t = types.Join(prev, t)
	}
	in.ti.Vars[sym] = t
}

// field records an assignment to a receiver field of the current
// method's class.
func (in *inferrer) field(name string, t types.Type, line int) {
	cls := in.recvClass
	fields := in.ti.Fields[cls]
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Type = types.Join(fields[i].Type, t)
			return
		}
	}
	in.ti.Fields[cls] = append(fields, Field{Name: name, Type: t, Line: line})
}

// isMainGuard reports whether s is Python's if __name__ == "__main__".
func isMainGuard(s *ast.If) bool {
	cmp, ok := s.Cond.(*ast.BinaryOp)
	if !ok || cmp.Op != token.EQUALS || s.Else != nil {
		return false
	}
	id, ok := cmp.Left.(*ast.Identifier)
	lit, ok2 := cmp.Right.(*ast.Literal)
	if !ok || !ok2 {
		return false
	}
	return id.Name == "__name__" && lit.Kind == ast.LitString && lit.Value == "__main__"
}
