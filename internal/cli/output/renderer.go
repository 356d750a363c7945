// Package output renders command results as text tables, markdown or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// OutputMode selects how results are written.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a configured output format to an OutputMode.
// Unknown values fall back to ModeAuto.
func Mode(format string) OutputMode {
	switch OutputMode(strings.ToLower(format)) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes results to an output stream and diagnostics to an error
// stream.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	Styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		Styles: NewStyles(),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the effective mode. Auto resolves to text on a terminal and
// markdown otherwise.
func (r *Renderer) Mode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Out returns the output stream.
func (r *Renderer) Out() io.Writer { return r.out }

// ErrOut returns the diagnostics stream.
func (r *Renderer) ErrOut() io.Writer { return r.errOut }

// Println writes a line to the output stream.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output stream.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Errorf writes a styled diagnostic line to the error stream.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.Styles.Error.Render(fmt.Sprintf(format, a...)))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders rows under header. In JSON mode each row becomes an object
// keyed by the lower-cased header.
func (r *Renderer) Table(header []string, rows [][]string) error {
	if r.Mode() == ModeJSON {
		objects := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]string, len(header))
			for i, col := range header {
				if i < len(row) {
					obj[strings.ToLower(col)] = row[i]
				}
			}
			objects = append(objects, obj)
		}
		return r.JSON(objects)
	}

	if len(rows) == 0 {
		r.Println("(0 rows)")
		return nil
	}

	t := table.NewWriter()
	headerRow := make(table.Row, len(header))
	for i, col := range header {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.Mode() == ModeMarkdown {
		r.Println(t.RenderMarkdown())
		return nil
	}
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
	return nil
}

// Section writes a heading ahead of a table in text and markdown modes.
func (r *Renderer) Section(title string) {
	switch r.Mode() {
	case ModeMarkdown:
		r.Printf("### %s\n\n", title)
	case ModeText:
		r.Println(r.Styles.Header.Render(title))
	}
}
