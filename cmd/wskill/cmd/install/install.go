package install

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"whisper-skill/internal/app/skill"
)

var (
	sourceDir  string
	targetDir  string
	noProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&sourceDir, "source", "s", ".",
		"Directory containing the skill files to install")
	Cmd.Flags().StringVarP(&targetDir, "target", "t", "",
		"Installation directory (default: ~/.claude/skills/faster-whisper)")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"Disable the progress bar")
}

// Cmd represents the install command
var Cmd = &cobra.Command{
	Use:   "install",
	Short: "Install the skill files into the user skill directory",
	Long: `Install the skill files into the user skill directory.

Copies the skill files (SKILL.md, requirements.txt, skill.json, scripts/
and friends) into ~/.claude/skills/faster-whisper, overwriting existing
copies and marking script files executable. Missing source files are
skipped with a warning.`,
	Run: func(cmd *cobra.Command, args []string) {
		target := targetDir
		if target == "" {
			var err error
			target, err = skill.Dir()
			if err != nil {
				fmt.Printf("Error: could not resolve skill directory: %v\n", err)
				os.Exit(1)
			}
		}

		installer := skill.NewInstaller(sourceDir, target, os.Stdout)
		installer.Progress = !noProgress
		if err := installer.Run(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Println("🚀 You can now use the skill:")
		fmt.Println("   wskill setup")
		fmt.Println("   wskill transcribe audio.mp3 --language zh")
	},
}
