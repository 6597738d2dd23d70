package setup

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"whisper-skill/internal/app/skill"
)

var skillDir string

func init() {
	Cmd.Flags().StringVarP(&skillDir, "dir", "d", "",
		"Skill directory holding the venv (default: ~/.claude/skills/faster-whisper)")
}

// Cmd represents the setup command
var Cmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare the skill's Python virtual environment",
	Long: `Prepare the skill's Python virtual environment.

Creates the .venv inside the skill directory if it does not exist, then
installs the dependencies from requirements.txt (faster-whisper and
friends). Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := skillDir
		if dir == "" {
			var err error
			dir, err = skill.Dir()
			if err != nil {
				fmt.Printf("Error: could not resolve skill directory: %v\n", err)
				os.Exit(1)
			}
		}

		env := skill.NewEnvironment(dir)
		if err := env.Ensure(); err != nil {
			fmt.Printf("❌ %v\n", err)
			fmt.Println("\n❌ Environment setup failed")
			os.Exit(1)
		}

		fmt.Println("\n✅ Environment ready!")
		fmt.Printf("   Virtual env: %s\n", env.VenvDir)
		fmt.Printf("   Python: %s\n", env.Python())
		fmt.Println("\n🚀 You can now run transcriptions:")
		fmt.Println("   wskill transcribe audio.mp3")
		fmt.Println("   wskill transcribe audio.mp3 --language zh --output result.txt")
	},
}
