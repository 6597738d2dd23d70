package history

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"whisper-skill/internal/app/repository"
	"whisper-skill/internal/app/skill"
)

var limit int

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List recent transcription runs",
	Run: func(cmd *cobra.Command, args []string) {
		skillDir, err := skill.Dir()
		if err != nil {
			log.Fatalf("Failed to resolve skill directory: %v\n", err)
		}

		dao, err := repository.Open(skillDir)
		if err != nil {
			log.Fatal(err)
		}
		defer dao.Close()

		runs, err := dao.Recent(limit)
		if err != nil {
			log.Fatal(err)
		}

		if len(runs) == 0 {
			fmt.Println("No transcription runs recorded yet.")
			return
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s  %-4s  %-8s  %-9s  %s\n", "CREATED", "LANG", "DURATION", "FORMAT", "AUDIO FILE")
		for _, r := range runs {
			status := r.Language
			if r.HasError {
				status = "ERR"
			}
			fmt.Fprintf(w, "%-20s  %-4s  %7.1fs  %-9s  %s\n",
				r.CreatedAt.Format("2006-01-02 15:04:05"), status, r.Duration, r.Format, r.AudioFile)
			if r.HasError {
				fmt.Fprintf(w, "%-20s  error: %s\n", "", r.ErrorMessage)
			}
		}
	},
}
