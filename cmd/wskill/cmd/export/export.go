package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"whisper-skill/internal/app/repository"
	"whisper-skill/internal/app/repository/export"
	"whisper-skill/internal/app/skill"
)

var (
	outputFilePath string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of runs to export (0 for all)")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcription run history to excel",
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

		if err := export.ToExcel(runs, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
