package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/restud/dcasgen/internal/library"
	"github.com/restud/dcasgen/internal/render"
	"github.com/restud/dcasgen/internal/schema"
)

const responseTemplate = `{salutation} {author},

Thank you for submitting the replication package for "{title}" ({manuscript_id}).

To comply with the Data and Code Availability Standard, please make the following changes:

{requests}

In addition, please consider the following recommendations to ease reproducibility:

{recommendations}

Best regards,
The Data Editor
`

func TestGenerate_SingleRequest(t *testing.T) {
	report := `
version: 2
author: Jane Doe
salutation: Dear
email: jane@example.org
title: Widgets and Growth
manuscript_id: MS-2041
tags: []
DCAS_rules:
  - dcas_reference: data-1
    description: Data availability statement present
    answer: "yes"
  - dcas_reference: data-2
    description: Dataset deposited in a trusted repository
    answer: "no"
    comment: missing dataset
`
	out, err := Generate(Input{
		Report:   []byte(report),
		Template: responseTemplate,
		Format:   library.FormatYAML,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(out, "missing dataset (data-2)") {
		t.Errorf("Expected request line with reference, got:\n%s", out)
	}
	if !strings.Contains(out, "please make the following change:") {
		t.Errorf("Expected singular phrase for one request, got:\n%s", out)
	}
	// No recommendations: the whole section disappears.
	if strings.Contains(out, "recommendation") {
		t.Errorf("Expected recommendations section elided, got:\n%s", out)
	}
	if !strings.Contains(out, "Dear Jane Doe,") {
		t.Errorf("Metadata not substituted, got:\n%s", out)
	}
}

func TestGenerate_TwoCommentsStayPlural(t *testing.T) {
	report := `
version: 2
author: Jane Doe
salutation: Dear
title: Widgets and Growth
DCAS_rules:
  - dcas_reference: data-2
    description: Dataset deposited in a trusted repository
    answer: "no"
    comment:
      - missing dataset
      - missing codebook
`
	out, err := Generate(Input{
		Report:   []byte(report),
		Template: responseTemplate,
		Format:   library.FormatYAML,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(out, "1. missing dataset (data-2)") || !strings.Contains(out, "2. missing codebook (data-2)") {
		t.Errorf("Expected numbered request lines, got:\n%s", out)
	}
	if !strings.Contains(out, "please make the following changes:") {
		t.Errorf("Plural phrase must stay for two requests, got:\n%s", out)
	}
}

func TestGenerate_SnippetExpansion(t *testing.T) {
	report := `
version: 2
author: Jane Doe
salutation: Dear
title: Widgets and Growth
DCAS_rules:
  - dcas_reference: data-2
    description: Dataset deposited in a trusted repository
    answer: "no"
    comment: cite_data
recommendations:
  - use_zenodo
`
	snippets := `
tags:
  cite_data: please cite the dataset in the availability statement
  use_zenodo: consider archiving the package on Zenodo
`
	out, err := Generate(Input{
		Report:   []byte(report),
		Snippets: []byte(snippets),
		Template: responseTemplate,
		Format:   library.FormatYAML,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(out, "please cite the dataset in the availability statement (data-2)") {
		t.Errorf("Snippet not expanded in request, got:\n%s", out)
	}
	if !strings.Contains(out, "consider archiving the package on Zenodo") {
		t.Errorf("Snippet not expanded in recommendation, got:\n%s", out)
	}
	if !strings.Contains(out, "please consider the following recommendation to") {
		t.Errorf("Expected singular recommendation phrase, got:\n%s", out)
	}
}

func TestGenerate_LegacyLenientStrictFatal(t *testing.T) {
	legacy := `
author: Jane
salutation: Dear
title: Old Report
DCAS_rules:
  - section: Data
    item: Availability
    description: First
    order: 1
    answer: "partial"
`
	template := "{dcas_items}\n"
	out, err := Generate(Input{
		Report:   []byte(legacy),
		Template: template,
		Format:   library.FormatYAML,
	})
	if err != nil {
		t.Fatalf("Legacy dialect must tolerate unrecognized verdicts, got %v", err)
	}
	if !strings.Contains(out, "Data - Availability: not evaluated") {
		t.Errorf("Expected rule shown as not evaluated, got:\n%s", out)
	}

	strict := "version: 2\n" + legacy + "    dcas_reference: data-1\n"
	_, err = Generate(Input{
		Report:   []byte(strict),
		Template: template,
		Format:   library.FormatYAML,
	})
	var schemaErr *schema.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Strict dialect must reject the same verdict, got %v", err)
	}
	if schemaErr.Rule != "data-1" {
		t.Errorf("SchemaError.Rule = %q, want data-1", schemaErr.Rule)
	}
}

func TestGenerate_TOMLDescriptionFallback(t *testing.T) {
	report := `
[metadata]
author = "Jane Doe"
salutation = "Dear"
title = "Widgets and Growth"

[[dcas_rules]]
number = "data-5"
text = "Dataset deposited in a trusted repository"
answer = "no"
`
	out, err := Generate(Input{
		Report:   []byte(report),
		Template: "{requests}\n",
		Format:   library.FormatTOML,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Dataset deposited in a trusted repository (data-5)") {
		t.Errorf("Expected description fallback line, got:\n%s", out)
	}
}

func TestGenerate_TOMLAuthorRequests(t *testing.T) {
	report := `
requests = ["cite_req"]

[metadata]
author = "Jane Doe"
salutation = "Dear"
title = "Widgets and Growth"

[[dcas_rules]]
number = "data-2"
text = "Dataset deposited in a trusted repository"
answer = "no"
`
	snippets := `
[snippets]
cite_req = "please add full citations for all datasets used"
`
	out, err := Generate(Input{
		Report:   []byte(report),
		Snippets: []byte(snippets),
		Template: "{requests}\n",
		Format:   library.FormatTOML,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "please add full citations for all datasets used") {
		t.Errorf("Expected author-supplied request resolved through snippets, got:\n%s", out)
	}
	cited := strings.Index(out, "please add full citations")
	derived := strings.Index(out, "Dataset deposited in a trusted repository (data-2)")
	if derived < 0 || cited > derived {
		t.Errorf("Author-supplied requests must precede rule-derived lines, got:\n%s", out)
	}
}

func TestGenerate_RenderErrorYieldsNoOutput(t *testing.T) {
	report := "version: 2\nauthor: Jane\nDCAS_rules: []\n"
	out, err := Generate(Input{
		Report:   []byte(report),
		Template: "Dear {reviewer}",
		Format:   library.FormatYAML,
	})
	var renderErr *render.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Expected *render.RenderError, got %v", err)
	}
	if out != "" {
		t.Errorf("Failed render must yield no output, got %q", out)
	}
}
