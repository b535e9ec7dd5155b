package diagnostics

import (
	"fmt"
	"strings"
)

// Kind is the compiler phase that produced a diagnostic.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Semantic
)

// Label is the prefix used in the diagnostic text format.
func (k Kind) Label() string {
	switch k {
	case Lexical:
		return "lexical error: "
	case Syntactic:
		return "syntactic error: "
	case Semantic:
		return "semantic error: "
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrorCode identifies a class of semantic diagnostic.
type ErrorCode string

const (
	ErrS001 ErrorCode = "S001" // Duplicate class name
	ErrS002 ErrorCode = "S002" // Reserved word used as class name
	ErrS003 ErrorCode = "S003" // Superclass does not exist
	ErrS004 ErrorCode = "S004" // Superclass is sealed
	ErrS005 ErrorCode = "S005" // Inheritance cycle
	ErrS006 ErrorCode = "S006" // Reserved word used as field name
	ErrS007 ErrorCode = "S007" // Duplicate field
	ErrS008 ErrorCode = "S008" // Reserved word used as method name
	ErrS009 ErrorCode = "S009" // Duplicate method
	ErrS010 ErrorCode = "S010" // No Main class with void main()
	ErrS011 ErrorCode = "S011" // Undefined type
	ErrS012 ErrorCode = "S012" // Incompatible types
	ErrS013 ErrorCode = "S013" // Undeclared variable
	ErrS014 ErrorCode = "S014" // Name already declared
	ErrS015 ErrorCode = "S015" // Missing trailing return
	ErrS016 ErrorCode = "S016" // Predicate is not boolean
	ErrS017 ErrorCode = "S017" // Break outside loop
	ErrS018 ErrorCode = "S018" // Argument count mismatch
	ErrS019 ErrorCode = "S019" // Operand type mismatch
	ErrS020 ErrorCode = "S020" // Void value used
	ErrS021 ErrorCode = "S021" // Invalid increment/decrement target
	ErrS022 ErrorCode = "S022" // Unknown method or invalid receiver
	ErrS023 ErrorCode = "S023" // Reserved word used as variable name
)

var errorCodeTitles = map[ErrorCode]string{
	ErrS001: "duplicate class",
	ErrS002: "illegal class name",
	ErrS003: "missing superclass",
	ErrS004: "sealed superclass",
	ErrS005: "inheritance cycle",
	ErrS006: "illegal field name",
	ErrS007: "duplicate field",
	ErrS008: "illegal method name",
	ErrS009: "duplicate method",
	ErrS010: "no main class",
	ErrS011: "undefined type",
	ErrS012: "incompatible types",
	ErrS013: "undeclared variable",
	ErrS014: "already declared",
	ErrS015: "missing return",
	ErrS016: "non-boolean predicate",
	ErrS017: "break outside loop",
	ErrS018: "argument count",
	ErrS019: "operand type",
	ErrS020: "void value",
	ErrS021: "invalid increment target",
	ErrS022: "unknown method",
	ErrS023: "illegal variable name",
}

// Title is a short human name for the code.
func (c ErrorCode) Title() string {
	return errorCodeTitles[c]
}

// DiagnosticError is one recorded problem. An empty File means the location
// is unknown; Line is -1 when no line applies.
type DiagnosticError struct {
	Kind    Kind
	Code    ErrorCode
	File    string
	Line    int
	Message string
}

// NewError creates a semantic diagnostic.
func NewError(code ErrorCode, file string, line int, message string) *DiagnosticError {
	return &DiagnosticError{Kind: Semantic, Code: code, File: file, Line: line, Message: message}
}

// NewGlobalError creates a semantic diagnostic with no location.
func NewGlobalError(code ErrorCode, message string) *DiagnosticError {
	return &DiagnosticError{Kind: Semantic, Code: code, Line: -1, Message: message}
}

// Error renders file:line:label message, or label message without a file.
func (e *DiagnosticError) Error() string {
	if e.File == "" {
		return e.Kind.Label() + e.Message
	}
	return fmt.Sprintf("%s:%d:%s%s", e.File, e.Line, e.Kind.Label(), e.Message)
}

// CompilationError is returned by the analyzer when any diagnostic was
// recorded. Errors is the handler's ordered list at the end of the run.
type CompilationError struct {
	Errors []*DiagnosticError
}

func (e *CompilationError) Error() string {
	var b strings.Builder
	b.WriteString(Summary(len(e.Errors)))
	for _, d := range e.Errors {
		b.WriteString("\n")
		b.WriteString(d.Error())
	}
	return b.String()
}

// Summary returns "1 error found" or "N errors found".
func Summary(n int) string {
	if n == 1 {
		return "1 error found"
	}
	return fmt.Sprintf("%d errors found", n)
}
