package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/bantam/internal/classtree"
	"github.com/funvibe/bantam/internal/diagnostics"
)

// Diagnostic is the serialisable form of one diagnostics.DiagnosticError.
type Diagnostic struct {
	Kind    string `yaml:"kind" json:"kind"`
	Code    string `yaml:"code" json:"code"`
	File    string `yaml:"file,omitempty" json:"file,omitempty"`
	Line    int    `yaml:"line" json:"line"`
	Message string `yaml:"message" json:"message"`
	// Text is the rendered "file:line:kind error: message" line.
	Text string `yaml:"text" json:"text"`
}

// Class is one entry of the class hierarchy in depth-first order.
type Class struct {
	Name        string `yaml:"name" json:"name"`
	Parent      string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Depth       int    `yaml:"depth" json:"depth"`
	Builtin     bool   `yaml:"builtin,omitempty" json:"builtin,omitempty"`
	Descendants int    `yaml:"descendants" json:"descendants"`
}

// Report describes one analysis run.
type Report struct {
	RunID       string       `yaml:"run_id" json:"run_id"`
	CreatedAt   time.Time    `yaml:"created_at" json:"created_at"`
	Files       []string     `yaml:"files" json:"files"`
	OK          bool         `yaml:"ok" json:"ok"`
	Diagnostics []Diagnostic `yaml:"diagnostics" json:"diagnostics"`
	Classes     []Class      `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// New builds a report for a run over files. root may be nil when analysis
// never got as far as building the hierarchy.
func New(files []string, root *classtree.Node, errs []*diagnostics.DiagnosticError) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Files:       append([]string(nil), files...),
		OK:          len(errs) == 0,
		Diagnostics: make([]Diagnostic, 0, len(errs)),
	}
	for _, e := range errs {
		r.Diagnostics = append(r.Diagnostics, FromError(e))
	}
	r.Classes = Hierarchy(root)
	return r
}

// FromError converts a diagnostic record.
func FromError(e *diagnostics.DiagnosticError) Diagnostic {
	return Diagnostic{
		Kind:    e.Kind.String(),
		Code:    string(e.Code),
		File:    e.File,
		Line:    e.Line,
		Message: e.Message,
		Text:    e.Error(),
	}
}

// Hierarchy flattens the tree under root, parents before children.
func Hierarchy(root *classtree.Node) []Class {
	if root == nil {
		return nil
	}
	var classes []Class
	root.Walk(func(n *classtree.Node, depth int) {
		c := Class{
			Name:        n.Name(),
			Depth:       depth,
			Builtin:     n.IsBuiltin(),
			Descendants: n.NumDescendants(),
		}
		if p := n.Parent(); p != nil {
			c.Parent = p.Name()
		}
		classes = append(classes, c)
	})
	return classes
}

// ErrorCount returns the number of diagnostics in the report.
func (r *Report) ErrorCount() int {
	return len(r.Diagnostics)
}

// Summary is the closing line of a text report.
func (r *Report) Summary() string {
	if r.OK {
		return "no errors found"
	}
	return diagnostics.Summary(len(r.Diagnostics))
}
