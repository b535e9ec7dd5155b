package diagnostics

import "github.com/funvibe/bantam/internal/config"

// Handler collects diagnostics ordered by file, then by line.
//
// Files keep the order in which they were first reported; within a file,
// records are sorted by line and equal lines keep arrival order. Records
// without a file go to the front. At most config.MaxErrors records are kept
// and later ones are dropped.
//
// A Handler accumulates across analyzer runs until Clear is called.
type Handler struct {
	errors []*DiagnosticError
}

func NewHandler() *Handler {
	return &Handler{}
}

// Register records err. Nil is ignored.
func (h *Handler) Register(err *DiagnosticError) {
	if err == nil || len(h.errors) >= config.MaxErrors {
		return
	}
	h.insert(err)
}

// RegisterError records a semantic diagnostic at file:line.
func (h *Handler) RegisterError(code ErrorCode, file string, line int, message string) {
	h.Register(NewError(code, file, line, message))
}

// RegisterGlobal records a semantic diagnostic with no location.
func (h *Handler) RegisterGlobal(code ErrorCode, message string) {
	h.Register(NewGlobalError(code, message))
}

func (h *Handler) insert(e *DiagnosticError) {
	i := 0
	if e.File != "" {
		for i = 0; i < len(h.errors); i++ {
			if h.errors[i].File == e.File {
				break
			}
		}
		for ; i < len(h.errors); i++ {
			if h.errors[i].File != e.File || e.Line < h.errors[i].Line {
				break
			}
		}
	}
	h.errors = append(h.errors, nil)
	copy(h.errors[i+1:], h.errors[i:])
	h.errors[i] = e
}

func (h *Handler) ErrorsFound() bool {
	return len(h.errors) > 0
}

func (h *Handler) Count() int {
	return len(h.errors)
}

// Errors returns a copy of the ordered records.
func (h *Handler) Errors() []*DiagnosticError {
	return append([]*DiagnosticError(nil), h.errors...)
}

func (h *Handler) Clear() {
	h.errors = nil
}
