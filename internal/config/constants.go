package config

// AST document extensions accepted by the CLI.
var DocumentExtensions = []string{".yaml", ".yml", ".json", ".ast"}

// Built-in class names
const (
	ObjectClassName = "Object"
	StringClassName = "String"
	TextIOClassName = "TextIO"
	SysClassName    = "Sys"
)

// Primitive and pseudo type names
const (
	IntTypeName     = "int"
	BooleanTypeName = "boolean"
	VoidTypeName    = "void"
	NullTypeName    = "null"
)

// Pseudo-variables bound in every class's field table.
const (
	ThisName  = "this"
	SuperName = "super"
)

// Entry point requirements.
const (
	MainClassName  = "Main"
	MainMethodName = "main"
)

// Synthetic source position of built-in declarations.
const (
	BuiltinFilename = "<built-in class>"
	BuiltinLine     = -1
)

// MaxErrors is the number of diagnostics a handler retains.
const MaxErrors = 100

// ReservedIdentifiers lex as identifiers but can never name a class,
// field, method, formal or local variable.
var ReservedIdentifiers = map[string]bool{
	NullTypeName:    true,
	ThisName:        true,
	SuperName:       true,
	VoidTypeName:    true,
	IntTypeName:     true,
	BooleanTypeName: true,
}

// SealedClasses are built-in classes that cannot be extended.
var SealedClasses = map[string]bool{
	StringClassName: true,
	TextIOClassName: true,
	SysClassName:    true,
}

// IsReserved reports whether name is a reserved identifier.
func IsReserved(name string) bool {
	return ReservedIdentifiers[name]
}

// IsPrimitive reports whether typ is int or boolean.
func IsPrimitive(typ string) bool {
	return typ == IntTypeName || typ == BooleanTypeName
}
