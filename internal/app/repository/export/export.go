// Package export writes run history to an Excel workbook.
package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"whisper-skill/internal/app/model"
)

// ToExcel writes the runs to an .xlsx file at outputFilePath.
func ToExcel(runs []model.Run, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Runs")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Audio File"
	headerRow.AddCell().Value = "Model"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Confidence"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Format"
	headerRow.AddCell().Value = "Output Path"
	headerRow.AddCell().Value = "Created At"
	headerRow.AddCell().Value = "Error Message"

	for _, r := range runs {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.AudioFile
		row.AddCell().Value = r.ModelSize
		row.AddCell().Value = r.Language
		row.AddCell().Value = fmt.Sprintf("%.2f%%", r.LanguageProbability*100)
		row.AddCell().Value = fmt.Sprintf("%.1f", r.Duration)
		row.AddCell().Value = r.Format
		row.AddCell().Value = r.OutputPath
		row.AddCell().Value = r.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = r.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
