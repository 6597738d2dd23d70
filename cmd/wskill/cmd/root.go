package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"whisper-skill/cmd/wskill/cmd/export"
	"whisper-skill/cmd/wskill/cmd/history"
	"whisper-skill/cmd/wskill/cmd/install"
	"whisper-skill/cmd/wskill/cmd/serve"
	"whisper-skill/cmd/wskill/cmd/setup"
	"whisper-skill/cmd/wskill/cmd/transcribe"
	"whisper-skill/cmd/wskill/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wskill",
	Short: "Speech-to-text transcription skill built on faster-whisper",
	Long: `Speech-to-text transcription skill built on faster-whisper.
- install copies the skill files into ~/.claude/skills/faster-whisper
- setup prepares the private Python environment the engine runs in
- transcribe converts an audio file into text, SRT subtitles or JSON`,
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
	rootCmd.AddCommand(install.Cmd)
	rootCmd.AddCommand(setup.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
