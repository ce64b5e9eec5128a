package compiler

import (
	"strconv"
	"strings"

	"github.com/kolkov/xlate/internal/ast"
	"github.com/kolkov/xlate/internal/ir"
	"github.com/kolkov/xlate/internal/semantic"
	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

func (c *compiler) exprs(xs []ast.Expr) []ir.Expr {
	if len(xs) == 0 {
		return nil
	}
	out := make([]ir.Expr, len(xs))
	for i, x := range xs {
		out[i] = c.expr(x)
	}
	return out
}

func (c *compiler) expr(e ast.Expr) ir.Expr {
	line := e.Pos().Line
	base := ir.MakeExpr(c.info.TypeOf(e), line)

	switch e := e.(type) {
	case *ast.Literal:
		return literal(e, line)

	case *ast.Identifier:
		return c.identifier(e, base)

	case *ast.This:
		return &ir.Self{BaseExpr: base}

	case *ast.BinaryOp:
		l := c.expr(e.Left)
		r := c.expr(e.Right)
		return &ir.BinaryOp{BaseExpr: base, Op: c.binaryOp(e.Pos(), e.Op, l.Type(), r.Type()), Left: l, Right: r}

	case *ast.UnaryOp:
		return &ir.UnaryOp{BaseExpr: base, Op: unaryOp(e.Pos(), e.Op), X: c.expr(e.X), Postfix: e.Postfix}

	case *ast.Assignment:
		unsupported(e.Pos(), "assignment inside an expression")

	case *ast.Call:
		return c.call(e, base)

	case *ast.Attribute:
		return c.attribute(e, base)

	case *ast.Index:
		return &ir.Index{BaseExpr: base, X: c.expr(e.X), Index: c.expr(e.Index)}

	case *ast.ListLit:
		return &ir.List{BaseExpr: base, Elems: c.exprs(e.Elems)}
	}
	panic("compiler: unexpected expression type")
}

// ----- Leaves -----

func literal(e *ast.Literal, line int) *ir.Literal {
	out := &ir.Literal{BaseExpr: ir.MakeExpr(semantic.LiteralType(e.Kind), line), Value: e.Value}
	switch e.Kind {
	case ast.LitInt:
		out.Value = normalizeNumber(e.Value, false)
	case ast.LitFloat:
		out.Value = normalizeNumber(e.Value, true)
	case ast.LitChar:
		out.Char = true
	case ast.LitNull:
		out.Null, out.Value = true, "null"
	}
	return out
}

// normalizeNumber rewrites a numeric literal into a spelling every
// target accepts: digit separators and type suffixes are dropped, octal
// becomes decimal, and floats get digits on both sides of the point.
// Hex and binary keep their prefix.
func normalizeNumber(raw string, float bool) string {
	s := strings.ReplaceAll(raw, "_", "")
	s = strings.ReplaceAll(s, "'", "") // C++14 digit separator
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		return strings.TrimRight(s, "lLuU")
	case strings.HasPrefix(lower, "0b"):
		return strings.TrimRight(s, "lLuU")
	}

	s = strings.TrimRight(s, "lLuUfFdD")
	if strings.HasPrefix(lower, "0o") {
		return octal(s[2:], raw)
	}
	if float {
		switch {
		case strings.HasPrefix(s, "."):
			s = "0" + s
		case strings.HasSuffix(s, "."):
			s += "0"
		case !strings.ContainsAny(s, ".eE"):
			s += ".0"
		}
		return strings.Replace(s, ".e", ".0e", 1)
	}
	if len(s) > 1 && s[0] == '0' {
		return octal(s[1:], raw)
	}
	return s
}

func octal(digits, raw string) string {
	n, err := strconv.ParseInt(digits, 8, 64)
	if err != nil {
		return raw
	}
	return strconv.FormatInt(n, 10)
}

// identifier lowers a name. A Python receiver becomes Self and a bare
// field name inside a Java or C++ method reads through the implicit
// receiver.
func (c *compiler) identifier(id *ast.Identifier, base ir.BaseExpr) ir.Expr {
	sym := c.info.Uses[id]
	switch {
	case sym == nil:
	case sym == c.receiver:
		return &ir.Self{BaseExpr: base}
	case sym.Kind == semantic.SymbolField && c.lang != token.Python && c.class != nil && !c.static:
		self := &ir.Self{BaseExpr: ir.MakeExpr(types.UserType(c.class.Name), base.SrcLine), Implicit: true}
		return &ir.Member{BaseExpr: base, X: self, Name: id.Name}
	}
	return &ir.Identifier{BaseExpr: base, Name: c.localName(sym, id.Name)}
}

// ----- Operators -----

var binaryOps = map[token.Token]ir.Op{
	token.ADD:        ir.Add,
	token.SUB:        ir.Sub,
	token.MUL:        ir.Mul,
	token.DIV:        ir.Div,
	token.FLOOR_DIV:  ir.FloorDiv,
	token.MOD:        ir.Mod,
	token.POW:        ir.Pow,
	token.EQUALS:     ir.Eq,
	token.NOT_EQUALS: ir.Ne,
	token.LESS:       ir.Lt,
	token.LTE:        ir.Le,
	token.GREATER:    ir.Gt,
	token.GTE:        ir.Ge,
	token.AND:        ir.And,
	token.OR:         ir.Or,
	token.SHL:        ir.Shl,
	token.SHR:        ir.Shr,
}

// binaryOp maps an operator token. Java and C++ "/" on two integers is
// integer division.
func (c *compiler) binaryOp(pos token.Position, tok token.Token, l, r types.Type) ir.Op {
	op, ok := binaryOps[tok]
	if !ok {
		unsupported(pos, "operator %s", tok)
	}
	if op == ir.Div && c.lang != token.Python && l.Kind == types.KindInt && r.Kind == types.KindInt {
		return ir.FloorDiv
	}
	return op
}

func unaryOp(pos token.Position, tok token.Token) ir.Op {
	switch tok {
	case token.SUB:
		return ir.Neg
	case token.ADD:
		return ir.Pos
	case token.NOT:
		return ir.Not
	case token.INCR:
		return ir.Inc
	case token.DECR:
		return ir.Dec
	}
	unsupported(pos, "unary operator %s", tok)
	return ir.OpInvalid
}

// ----- Calls -----

func (c *compiler) call(e *ast.Call, base ir.BaseExpr) ir.Expr {
	switch fn := e.Func.(type) {
	case *ast.Identifier:
		return c.nameCall(e, fn, base)
	case *ast.Attribute:
		return c.methodCall(e, fn, base)
	}
	unsupported(e.Pos(), "call of a computed function")
	return nil
}

func (c *compiler) nameCall(e *ast.Call, fn *ast.Identifier, base ir.BaseExpr) ir.Expr {
	name := fn.Name
	if e.New {
		if strings.HasSuffix(name, "[]") {
			unsupported(e.Pos(), "array allocation")
		}
		if t, known := types.Lookup(c.lang, name); known && t.Kind == types.KindArray && c.info.Uses[fn] == nil {
			if len(e.Args) > 0 {
				unsupported(e.Pos(), "%s with constructor arguments", name)
			}
			return &ir.List{BaseExpr: base}
		}
	}

	sym := c.info.Uses[fn]
	switch {
	case e.New || sym != nil && sym.Kind == semantic.SymbolClass:
		return &ir.Call{BaseExpr: base, Name: name, Args: c.exprs(e.Args), New: true}

	case sym != nil && sym.Kind == semantic.SymbolBuiltin:
		return c.builtinCall(e, stripStd(name), base)

	case sym != nil && sym.Kind == semantic.SymbolFunction:
		out := &ir.Call{BaseExpr: base, Name: name, Args: c.exprs(e.Args)}
		decl := c.funcs[sym]
		if t, ok := c.types.Results[decl]; ok {
			out.T = t
		}
		scope := c.info.Scopes.Scope(sym.Scope)
		if scope.Kind != semantic.ClassScope || scope.Name == c.entry {
			return out
		}
		// A method called by its bare name inside its class.
		if decl != nil && decl.HasModifier("static") {
			out.Recv = &ir.Identifier{BaseExpr: ir.MakeExpr(types.UserType(scope.Name), base.SrcLine), Name: scope.Name}
		} else if c.class != nil {
			out.Recv = &ir.Self{BaseExpr: ir.MakeExpr(types.UserType(c.class.Name), base.SrcLine), Implicit: true}
		}
		return out
	}
	return &ir.Call{BaseExpr: base, Name: name, Args: c.exprs(e.Args)}
}

// builtinCall maps predeclared functions of the source language onto
// the canonical builtins. Names without a canonical form stay plain
// calls.
func (c *compiler) builtinCall(e *ast.Call, name string, base ir.BaseExpr) ir.Expr {
	switch c.lang {
	case token.Python:
		switch name {
		case "print":
			unsupported(e.Pos(), "print used as a value")
		case "range":
			unsupported(e.Pos(), "range outside a for loop")
		case "max", "min":
			// max(xs) over a sequence has no canonical form.
			if len(e.Args) < 2 {
				break
			}
			return c.builtin(e, name, base)
		}
		if ir.Builtins[name] && name != "max" && name != "min" {
			return c.builtin(e, name, base)
		}

	case token.Cpp:
		switch name {
		case "abs", "max", "min":
			return c.builtin(e, name, base)
		case "to_string", "string":
			return c.builtin(e, "str", base)
		case "stoi", "int", "long", "short":
			return c.builtin(e, "int", base)
		case "stod", "double", "float":
			return c.builtin(e, "float", base)
		case "bool":
			return c.builtin(e, "bool", base)
		case "pow":
			return c.power(e, base)
		}
	}
	return &ir.Call{BaseExpr: base, Name: e.Func.(*ast.Identifier).Name, Args: c.exprs(e.Args)}
}

func (c *compiler) builtin(e *ast.Call, name string, base ir.BaseExpr) *ir.Call {
	switch name {
	case "len", "str", "int", "float", "bool", "abs":
		if len(e.Args) != 1 {
			unsupported(e.Pos(), "%s with %d arguments", name, len(e.Args))
		}
	case "max", "min":
		if len(e.Args) < 2 {
			unsupported(e.Pos(), "%s with %d arguments", name, len(e.Args))
		}
	}
	args := c.exprs(e.Args)
	switch name {
	case "len", "int":
		base.T = types.Int
	case "str":
		base.T = types.String
	case "float":
		base.T = types.Float
	case "bool":
		base.T = types.Bool
	case "abs", "max", "min":
		t := args[0].Type()
		for _, a := range args[1:] {
			t = types.Join(t, a.Type())
		}
		if t.IsNumeric() {
			base.T = t
		}
	}
	return &ir.Call{BaseExpr: base, Name: name, Args: args, Builtin: true}
}

func (c *compiler) power(e *ast.Call, base ir.BaseExpr) ir.Expr {
	if len(e.Args) != 2 {
		unsupported(e.Pos(), "pow with %d arguments", len(e.Args))
	}
	base.T = types.Float
	return &ir.BinaryOp{BaseExpr: base, Op: ir.Pow, Left: c.expr(e.Args[0]), Right: c.expr(e.Args[1])}
}

// libraryCalls maps Java static library methods onto builtins.
var libraryCalls = map[string]string{
	"Math.abs":           "abs",
	"Math.max":           "max",
	"Math.min":           "min",
	"String.valueOf":     "str",
	"Integer.toString":   "str",
	"Double.toString":    "str",
	"Integer.parseInt":   "int",
	"Double.parseDouble": "float",
}

func (c *compiler) methodCall(e *ast.Call, fn *ast.Attribute, base ir.BaseExpr) ir.Expr {
	if c.lang == token.Java {
		if _, ok := systemOut(e); ok {
			unsupported(e.Pos(), "print used as a value")
		}
		if cls, ok := fn.X.(*ast.Identifier); ok && c.isBuiltin(cls) {
			qualified := cls.Name + "." + fn.Name
			if qualified == "Math.pow" {
				return c.power(e, base)
			}
			if name, ok := libraryCalls[qualified]; ok {
				return c.builtin(e, name, base)
			}
		}
	}

	if len(e.Args) == 0 && c.isLength(fn) {
		return &ir.Call{BaseExpr: ir.MakeExpr(types.Int, base.SrcLine), Name: "len", Args: []ir.Expr{c.expr(fn.X)}, Builtin: true}
	}

	// EntryClass.helper() after the entry class was unwrapped.
	if id, ok := fn.X.(*ast.Identifier); ok && id.Name == c.entry && c.entry != "" {
		return &ir.Call{BaseExpr: base, Name: fn.Name, Args: c.exprs(e.Args)}
	}
	out := &ir.Call{BaseExpr: base, Recv: c.expr(fn.X), Name: fn.Name, Args: c.exprs(e.Args)}
	if sym := c.member(fn); sym != nil {
		if t, ok := c.types.Results[c.funcs[sym]]; ok {
			out.T = t
		}
	}
	return out
}

// isLength matches the length methods: Java String.length() and C++
// size() or length().
func (c *compiler) isLength(fn *ast.Attribute) bool {
	switch c.lang {
	case token.Java:
		return fn.Name == "length" && c.info.TypeOf(fn.X).Kind == types.KindString
	case token.Cpp:
		return fn.Name == "size" || fn.Name == "length"
	}
	return false
}

// member resolves a method of a user class from the receiver's type.
func (c *compiler) member(fn *ast.Attribute) *semantic.Symbol {
	t := c.info.TypeOf(fn.X)
	if t.Kind != types.KindUser {
		return nil
	}
	for sym := range c.funcs {
		scope := c.info.Scopes.Scope(sym.Scope)
		if sym.Name == fn.Name && scope.Kind == semantic.ClassScope && scope.Name == t.Name {
			return sym
		}
	}
	return nil
}

// attribute lowers x.name. Java array .length is the len builtin.
func (c *compiler) attribute(e *ast.Attribute, base ir.BaseExpr) ir.Expr {
	if c.lang == token.Java && e.Name == "length" && c.info.TypeOf(e.X).Kind == types.KindArray {
		return &ir.Call{BaseExpr: ir.MakeExpr(types.Int, base.SrcLine), Name: "len", Args: []ir.Expr{c.expr(e.X)}, Builtin: true}
	}
	if id, ok := e.X.(*ast.Identifier); ok && id.Name == c.entry && c.entry != "" {
		return &ir.Identifier{BaseExpr: base, Name: e.Name}
	}
	return &ir.Member{BaseExpr: base, X: c.expr(e.X), Name: e.Name}
}

func stripStd(name string) string {
	return strings.TrimPrefix(name, "std::")
}
