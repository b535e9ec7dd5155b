package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/bantam/internal/config"
)

// Options controls rendering.
type Options struct {
	Format string // text, yaml or json
	Color  bool   // text only
	Tree   bool   // text only: print the class hierarchy
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r *Report, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return renderText(w, r, opts)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

func renderText(w io.Writer, r *Report, opts Options) error {
	var b strings.Builder
	for _, d := range r.Diagnostics {
		b.WriteString(textLine(d, opts.Color))
		b.WriteByte('\n')
	}
	if r.OK {
		b.WriteString(paint(opts.Color, ansiGreen, r.Summary()))
	} else {
		b.WriteString(paint(opts.Color, ansiBold, r.Summary()))
	}
	b.WriteByte('\n')

	if opts.Tree && len(r.Classes) > 0 {
		b.WriteByte('\n')
		writeTree(&b, r.Classes, opts.Color)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// textLine colours the "<kind> error:" label of a diagnostic line.
func textLine(d Diagnostic, color bool) string {
	if !color {
		return d.Text
	}
	label := d.Kind + " error:"
	i := strings.Index(d.Text, label)
	if i < 0 {
		return d.Text
	}
	return d.Text[:i] + paint(true, ansiRed, label) + d.Text[i+len(label):]
}

func writeTree(b *strings.Builder, classes []Class, color bool) {
	for _, c := range classes {
		b.WriteString(strings.Repeat("  ", c.Depth))
		b.WriteString(c.Name)
		if c.Builtin {
			b.WriteString(paint(color, ansiDim, " (built-in)"))
		}
		b.WriteByte('\n')
	}
}

