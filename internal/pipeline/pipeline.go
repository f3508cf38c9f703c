// Package pipeline wires the rendering stages end to end: schema parse,
// derivation, and template substitution. Every stage is a pure
// transformation over in-memory text, so a render holds no state and two
// renders never share anything.
package pipeline

import (
	"github.com/restud/dcasgen/internal/derive"
	"github.com/restud/dcasgen/internal/library"
	"github.com/restud/dcasgen/internal/model"
	"github.com/restud/dcasgen/internal/render"
	"github.com/restud/dcasgen/internal/schema"
)

// Input bundles the three text blobs a render needs. The caller (the CLI
// layer) is responsible for reading them; the pipeline never touches the
// filesystem.
type Input struct {
	Report   []byte
	Snippets []byte
	Template string
	Format   library.Format
}

// Generate runs the full render: parse the report and snippet blobs,
// derive the requests/recommendations view, and substitute it into the
// template. Errors are either a *schema.SchemaError or a
// *render.RenderError; a failed render yields no output.
func Generate(in Input) (string, error) {
	doc, err := Validate(in)
	if err != nil {
		return "", err
	}
	view := derive.Derive(doc)
	return render.Render(in.Template, view)
}

// Validate parses the report without rendering, returning the canonical
// document. Used by the validate and status commands.
func Validate(in Input) (*model.ReportDocument, error) {
	if in.Format == library.FormatTOML {
		return schema.ParseTOML(in.Report, in.Snippets)
	}
	return schema.Parse(in.Report, in.Snippets)
}
