package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"meeting-scribe/cmd/mscribe/cmd/analyze"
	"meeting-scribe/cmd/mscribe/cmd/export"
	"meeting-scribe/cmd/mscribe/cmd/serve"
	"meeting-scribe/cmd/mscribe/cmd/version"
	"meeting-scribe/cmd/mscribe/cmd/warmup"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mscribe",
	Short: "Meeting transcription, translation, and analysis service",
	Long: `Meeting transcription, translation, and analysis service.
- serve runs the HTTP API with both pipelines
- analyze runs the model-driven pipeline on one file from the CLI
- warmup replays a directory of recordings against a running server
- export writes recent analyses to a spreadsheet`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(warmup.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
