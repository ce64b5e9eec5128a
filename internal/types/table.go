package types

import "github.com/kolkov/xlate/internal/token"

// names maps each source language's type spellings onto the lattice.
// Array entries carry an Object element; callers refine it from type
// arguments. Tables are read-only after init.
var names = [...]map[string]Type{
	token.Python: {
		"int":    Int,
		"float":  Float,
		"bool":   Bool,
		"str":    String,
		"None":   Void,
		"list":   ArrayOf(Object),
		"List":   ArrayOf(Object),
		"tuple":  ArrayOf(Object),
		"object": Object,
		"Any":    Object,
		"dict":   Object,
		"set":    Object,
	},
	token.Java: {
		"int":       Int,
		"long":      Int,
		"short":     Int,
		"byte":      Int,
		"Integer":   Int,
		"Long":      Int,
		"Short":     Int,
		"Byte":      Int,
		"float":     Float,
		"double":    Float,
		"Float":     Float,
		"Double":    Float,
		"boolean":   Bool,
		"Boolean":   Bool,
		"char":      String,
		"Character": String,
		"String":    String,
		"void":      Void,
		"Object":    Object,
		"var":       Object,
		"List":      ArrayOf(Object),
		"ArrayList": ArrayOf(Object),
	},
	token.Cpp: {
		"int":         Int,
		"long":        Int,
		"short":       Int,
		"size_t":      Int,
		"float":       Float,
		"double":      Float,
		"bool":        Bool,
		"char":        String,
		"string":      String,
		"std::string": String,
		"void":        Void,
		"auto":        Object,
		"vector":      ArrayOf(Object),
		"std::vector": ArrayOf(Object),
	},
}

// Lookup maps a type name of lang onto the lattice. The second result is
// false for names absent from the table; callers treat those as user types.
func Lookup(lang token.Language, name string) (Type, bool) {
	t, ok := names[lang][name]
	return t, ok
}

// FromName maps a type name onto the lattice, falling back to
// UserType(name) for unknown names.
func FromName(lang token.Language, name string) Type {
	if t, ok := Lookup(lang, name); ok {
		return t
	}
	if name == "" {
		return Object
	}
	return UserType(name)
}
