package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restud/dcasgen/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dcasgen",
	Short: "dcasgen - render DCAS compliance reports into prose",
	Long: `dcasgen turns a structured DCAS compliance report (the data/code
availability checklist evaluated for a manuscript) into the prose email
sent back to the authors.

It reads the report, resolves reusable text snippets, derives the list of
outstanding requests from non-passing rules, and substitutes everything
into a response template. Rendering is deterministic: the same report and
template always produce the same text.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("dcasgen v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.dcasgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.dcasgen")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match DCASGEN_*
	viper.SetEnvPrefix("DCASGEN")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves settings with the usual hierarchy: flags beat env
// vars beat the config file beat the built-in defaults.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if v := viper.GetString("templates_dir"); v != "" {
		cfg.TemplatesDir = v
	}
	if v := viper.GetString("default_template"); v != "" {
		cfg.DefaultTemplate = v
	}
	if v := viper.GetString("snippets_path"); v != "" {
		cfg.SnippetsPath = v
	}
	if v := viper.GetString("template_pattern"); v != "" {
		cfg.TemplatePattern = v
	}
	return cfg
}
