// ABOUTME: Root command and global flags for the talks CLI
// ABOUTME: Wires every subcommand and validates the shared output flags
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string
	sourceFlag   string
)

var outputFormats = []string{"auto", "table", "json", "plain"}

const banner = `
 ████████╗ █████╗ ██╗     ██╗  ██╗███████╗
 ╚══██╔══╝██╔══██╗██║     ██║ ██╔╝██╔════╝
    ██║   ███████║██║     █████╔╝ ███████╗
    ██║   ██╔══██║██║     ██╔═██╗ ╚════██║
    ██║   ██║  ██║███████╗██║  ██╗███████║
    ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚══════╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "talks",
		Short: "Content-based talk recommendations from transcripts",
		Long: banner + `

Recommend talks whose transcripts read most like a talk you liked.
Transcripts are indexed with TF-IDF and compared by cosine similarity;
talk metadata powers listings and descriptive rankings.

Configuration comes from $TALKS_CONFIG (TOML), TALKS_* environment
variables and a local .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet cannot be used together")
			}
			if !contains(outputFormats, outputFormat) {
				return fmt.Errorf("invalid --format %q (want one of auto, table, json, plain)", outputFormat)
			}
			if sourceFlag != "" && sourceFlag != "csv" && sourceFlag != "sqlite" {
				return fmt.Errorf("invalid --source %q (want csv or sqlite)", sourceFlag)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	flags.StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json, plain")
	flags.StringVar(&configPath, "config", "", "Config file (default $TALKS_CONFIG or ~/.config/talks/config.toml)")
	flags.StringVar(&sourceFlag, "source", "", "Corpus source: csv or sqlite (overrides TALKS_SOURCE)")

	cmd.AddCommand(
		NewRecommendCmd(),
		NewListCmd(),
		NewExploreCmd(),
		NewImportCmd(),
		NewInfoCmd(),
		NewExportCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
