package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/restud/dcasgen/internal/library"
	"github.com/restud/dcasgen/internal/pipeline"
	"github.com/restud/dcasgen/internal/status"
)

var (
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	issuesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	unknownStyle = lipgloss.NewStyle().Faint(true)
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [report]",
	Short: "Show whether a report still has outstanding issues",
	Long: `Status classifies a report at a glance: "issues" when any rule is
answered no, "good" when none are, and "unknown" for legacy reports whose
answers cannot be judged.

Example:
  dcasgen status report.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	path := "report.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	loader := library.NewLoader(cfg.TemplatesDir)
	report, err := loader.Report(path)
	if err != nil {
		return err
	}

	// Unreadable reports classify as unknown rather than failing: status
	// is a prompt decoration, not a validation gate.
	st := status.StatusUnknown
	if doc, err := pipeline.Validate(pipeline.Input{
		Report: report,
		Format: library.FormatForPath(path),
	}); err == nil {
		st = status.Classify(doc)
	}

	fmt.Printf("%s: %s\n", path, renderStatus(st))
	return nil
}

func renderStatus(st status.Status) string {
	switch st {
	case status.StatusGood:
		return goodStyle.Render(string(st))
	case status.StatusIssues:
		return issuesStyle.Render(string(st))
	default:
		return unknownStyle.Render(string(st))
	}
}
