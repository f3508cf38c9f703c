package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restud/dcasgen/internal/library"
)

var templatesPattern string

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available response templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().StringVar(&templatesPattern, "pattern", "", "glob pattern for template files (default from config)")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if templatesPattern == "" {
		templatesPattern = cfg.TemplatePattern
	}

	loader := library.NewLoader(cfg.TemplatesDir)
	names, err := loader.Templates(templatesPattern)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Printf("No templates matching %q in %s\n", templatesPattern, cfg.TemplatesDir)
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
