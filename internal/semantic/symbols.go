package semantic

import (
	"strings"

	"github.com/kolkov/xlate/internal/token"
	"github.com/kolkov/xlate/internal/types"
)

// SymbolKind defines the category of a symbol.
type SymbolKind uint8

const (
	SymbolVariable SymbolKind = iota // Local or global variable
	SymbolFunction                   // User-defined function or method
	SymbolClass                      // User-defined class
	SymbolParam                      // Function parameter
	SymbolField                      // Class field
	SymbolBuiltin                    // Predeclared name of the source language
)

// String returns a human-readable name for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolClass:
		return "class"
	case SymbolParam:
		return "parameter"
	case SymbolField:
		return "field"
	case SymbolBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Symbol holds information about a declared name.
type Symbol struct {
	Name string
	Kind SymbolKind

	// Declared is the declared type, nil when inferred or unknown.
	// For functions it is the result type, for classes the class type.
	Declared *types.Type

	Scope ScopeID        // Scope the symbol is declared in
	Pos   token.Position // Declaration position; invalid for builtins

	// Params holds declared parameter types of a function, nil entries
	// for untyped parameters.
	Params []*types.Type

	// Members is the member scope of a class, NoScope until the class
	// body has been entered.
	Members ScopeID

	// Bases lists the base classes of a class as written.
	Bases []string
}

// Type returns the declared type or Object.
func (s *Symbol) Type() types.Type {
	if s == nil || s.Declared == nil {
		return types.Object
	}
	return *s.Declared
}

// IsCallable reports whether the symbol names something that can be called.
func (s *Symbol) IsCallable() bool {
	return s.Kind == SymbolFunction || s.Kind == SymbolClass || s.Kind == SymbolBuiltin
}

// ScopeID indexes a scope in a ScopeTable.
type ScopeID int32

// NoScope is the parent of the universe scope.
const NoScope ScopeID = -1

// ScopeKind classifies scopes.
type ScopeKind uint8

const (
	UniverseScope ScopeKind = iota
	GlobalScope
	ClassScope
	FunctionScope
	BlockScope
)

// String returns a human-readable name for the scope kind.
func (k ScopeKind) String() string {
	switch k {
	case UniverseScope:
		return "universe"
	case GlobalScope:
		return "global"
	case ClassScope:
		return "class"
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	default:
		return "unknown"
	}
}

// Scope is one lexical region. Scopes refer to their parent by id.
type Scope struct {
	ID      ScopeID
	Parent  ScopeID
	Kind    ScopeKind
	Name    string // Function or class name; empty for blocks
	symbols map[string]*Symbol
	order   []*Symbol
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// ScopeTable is an arena of scopes addressed by ScopeID.
type ScopeTable struct {
	scopes []*Scope

	// hideClasses makes class scopes invisible from the functions nested
	// in them, as for Python methods.
	hideClasses bool
}

// NewScopeTable creates a table holding only the universe scope.
func NewScopeTable(hideClasses bool) *ScopeTable {
	t := &ScopeTable{hideClasses: hideClasses}
	t.New(NoScope, UniverseScope, "")
	return t
}

// Universe is the id of the predeclared scope.
const Universe ScopeID = 0

// New adds a scope and returns its id.
func (t *ScopeTable) New(parent ScopeID, kind ScopeKind, name string) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, &Scope{
		ID:      id,
		Parent:  parent,
		Kind:    kind,
		Name:    name,
		symbols: make(map[string]*Symbol),
	})
	return id
}

// Scope returns the scope with the given id.
func (t *ScopeTable) Scope(id ScopeID) *Scope {
	return t.scopes[id]
}

// Len returns the number of scopes.
func (t *ScopeTable) Len() int {
	return len(t.scopes)
}

// Declare adds sym to scope id. If the name is already declared there,
// the existing symbol is returned with ok false.
func (t *ScopeTable) Declare(id ScopeID, sym *Symbol) (prev *Symbol, ok bool) {
	s := t.scopes[id]
	if prev, exists := s.symbols[sym.Name]; exists {
		return prev, false
	}
	sym.Scope = id
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym)
	return sym, true
}

// LookupLocal finds name in scope id only.
func (t *ScopeTable) LookupLocal(id ScopeID, name string) *Symbol {
	return t.scopes[id].symbols[name]
}

// Lookup walks outward from scope id and returns the first symbol
// declared with the given name, or nil.
func (t *ScopeTable) Lookup(id ScopeID, name string) *Symbol {
	inFunc := false
	for id != NoScope {
		s := t.scopes[id]
		if !(t.hideClasses && inFunc && s.Kind == ClassScope) {
			if sym := s.symbols[name]; sym != nil {
				return sym
			}
		}
		if s.Kind == FunctionScope {
			inFunc = true
		}
		id = s.Parent
	}
	return nil
}

// Shadowed returns the symbol that sym hides in an enclosing block or
// function scope of the same function, or nil. Only block-scoped
// symbols of Java and C++ can shadow.
func (t *ScopeTable) Shadowed(sym *Symbol) *Symbol {
	if sym == nil || sym.Scope == NoScope || t.scopes[sym.Scope].Kind != BlockScope {
		return nil
	}
	for id := t.scopes[sym.Scope].Parent; id != NoScope; id = t.scopes[id].Parent {
		s := t.scopes[id]
		if s.Kind != BlockScope && s.Kind != FunctionScope {
			return nil
		}
		if prev := s.symbols[sym.Name]; prev != nil {
			return prev
		}
		if s.Kind == FunctionScope {
			return nil
		}
	}
	return nil
}

// Enclosing returns the innermost scope of the given kind that encloses
// id, or NoScope.
func (t *ScopeTable) Enclosing(id ScopeID, kind ScopeKind) ScopeID {
	for id != NoScope {
		s := t.scopes[id]
		if s.Kind == kind {
			return id
		}
		id = s.Parent
	}
	return NoScope
}

// ----- Universe -----

// builtin describes one predeclared name. A nil result means the result
// type depends on the arguments or is unknown.
type builtin struct {
	name   string
	result *types.Type
}

func ret(t types.Type) *types.Type { return &t }

var universes = [...][]builtin{
	token.Python: {
		{"print", ret(types.Void)},
		{"len", ret(types.Int)},
		{"range", ret(types.ArrayOf(types.Int))},
		{"abs", nil},
		{"max", nil},
		{"min", nil},
		{"sum", nil},
		{"round", nil},
		{"str", ret(types.String)},
		{"int", ret(types.Int)},
		{"float", ret(types.Float)},
		{"bool", ret(types.Bool)},
		{"list", ret(types.ArrayOf(types.Object))},
		{"input", ret(types.String)},
		{"sorted", ret(types.ArrayOf(types.Object))},
		{"reversed", nil},
		{"enumerate", nil},
		{"zip", nil},
		{"isinstance", ret(types.Bool)},
		{"type", nil},
		{"super", nil},
		{"object", nil},
		{"dict", nil},
		{"set", nil},
		{"tuple", nil},
		{"Exception", nil},
		{"ValueError", nil},
		{"__name__", ret(types.String)},
	},
	token.Java: {
		{"System", nil},
		{"Math", nil},
		{"String", nil},
		{"Integer", nil},
		{"Long", nil},
		{"Double", nil},
		{"Float", nil},
		{"Boolean", nil},
		{"Character", nil},
		{"Object", nil},
		{"Arrays", nil},
		{"List", nil},
		{"ArrayList", nil},
		{"Collections", nil},
		{"Exception", nil},
		{"RuntimeException", nil},
	},
	token.Cpp: {
		{"cout", nil},
		{"cin", nil},
		{"cerr", nil},
		{"endl", nil},
		{"printf", ret(types.Int)},
		{"abs", nil},
		{"max", nil},
		{"min", nil},
		{"sqrt", ret(types.Float)},
		{"pow", ret(types.Float)},
		{"swap", ret(types.Void)},
		{"to_string", ret(types.String)},
		{"stoi", ret(types.Int)},
		{"stod", ret(types.Float)},
		{"string", ret(types.String)},
		{"vector", nil},
		{"int", ret(types.Int)},
		{"long", ret(types.Int)},
		{"short", ret(types.Int)},
		{"double", ret(types.Float)},
		{"float", ret(types.Float)},
		{"bool", ret(types.Bool)},
		{"char", ret(types.String)},
		{"NULL", nil},
	},
}

// declareUniverse fills the universe scope with lang's predeclared names.
func (t *ScopeTable) declareUniverse(lang token.Language) {
	for _, b := range universes[lang] {
		t.Declare(Universe, &Symbol{Name: b.name, Kind: SymbolBuiltin, Declared: b.result})
	}
}

// trimStd strips a leading "std::" qualifier from a C++ name.
func trimStd(name string) (string, bool) {
	return strings.CutPrefix(name, "std::")
}
