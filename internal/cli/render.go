package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/restud/dcasgen/internal/library"
	"github.com/restud/dcasgen/internal/pipeline"
)

var (
	renderReport       string
	renderTemplate     string
	renderSnippets     string
	renderOut          string
	renderTemplatesDir string
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a report into prose using a response template",
	Long: `Render parses the report, derives the outstanding requests from its
DCAS rule answers, resolves snippet references, and substitutes the result
into the chosen template.

The report format is picked from the file extension (.yaml/.yml or .toml).

Example:
  dcasgen render -r report.yaml -t response.tmpl
  dcasgen render -r report.toml -s snippets.toml -o reply.txt`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderReport, "report", "r", "report.yaml", "report file")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "template name (default from config)")
	renderCmd.Flags().StringVarP(&renderSnippets, "snippets", "s", "", "snippet library file (default from config)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output path (default: stdout)")
	renderCmd.Flags().StringVar(&renderTemplatesDir, "templates-dir", "", "templates directory (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if renderTemplatesDir != "" {
		cfg.TemplatesDir = renderTemplatesDir
	}
	if renderTemplate == "" {
		renderTemplate = cfg.DefaultTemplate
	}
	if renderSnippets == "" {
		renderSnippets = cfg.SnippetsPath
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Report:   %s\n", renderReport)
		fmt.Fprintf(os.Stderr, "Template: %s\n", renderTemplate)
		fmt.Fprintf(os.Stderr, "Snippets: %s\n", renderSnippets)
		fmt.Fprintln(os.Stderr)
	}

	loader := library.NewLoader(cfg.TemplatesDir)
	report, err := loader.Report(renderReport)
	if err != nil {
		return err
	}
	snippets, err := loader.Snippets(renderSnippets)
	if err != nil {
		return err
	}
	template, err := loader.Template(renderTemplate)
	if err != nil {
		return err
	}

	out, err := pipeline.Generate(pipeline.Input{
		Report:   report,
		Snippets: snippets,
		Template: template,
		Format:   library.FormatForPath(renderReport),
	})
	if err != nil {
		return err
	}

	if renderOut == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(renderOut, []byte(out), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", renderOut)
	}
	return nil
}
