package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restud/dcasgen/internal/library"
	"github.com/restud/dcasgen/internal/pipeline"
)

var validateSnippets string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [report]",
	Short: "Check a report against its declared schema version",
	Long: `Validate parses the report without rendering it. Schema problems -
unrecognized answers, missing required fields, duplicate rule references -
are reported with the offending rule so they can be fixed in place.

Example:
  dcasgen validate report.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateSnippets, "snippets", "s", "", "snippet library file (default from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	path := "report.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if validateSnippets == "" {
		validateSnippets = cfg.SnippetsPath
	}

	loader := library.NewLoader(cfg.TemplatesDir)
	report, err := loader.Report(path)
	if err != nil {
		return err
	}
	snippets, err := loader.Snippets(validateSnippets)
	if err != nil {
		return err
	}

	doc, err := pipeline.Validate(pipeline.Input{
		Report:   report,
		Snippets: snippets,
		Format:   library.FormatForPath(path),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s: valid (schema version %d, %d rules, %d recommendations)\n",
		path, doc.SchemaVersion, len(doc.Rules), len(doc.Recommendations))
	return nil
}
