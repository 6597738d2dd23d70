package transcribe

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"whisper-skill/internal/app"
	"whisper-skill/internal/app/format"
	apptranscribe "whisper-skill/internal/app/transcribe"
	"whisper-skill/internal/app/util/files"
	"whisper-skill/internal/config"
)

var (
	configPath     string
	modelSize      string
	device         string
	computeType    string
	language       string
	task           string
	beamSize       int
	vadFilter      bool
	wordTimestamps bool
	outputPath     string
	outputFormat   string
	verbose        bool
)

func init() {
	Cmd.Flags().StringVar(&configPath, "config", "scripts/config.json",
		"Path to config file")
	Cmd.Flags().StringVar(&modelSize, "model", "",
		"Model size, e.g. tiny, base, small, medium, large-v3 (overrides config)")
	Cmd.Flags().StringVar(&device, "device", "",
		"Device: cpu or cuda (overrides config)")
	Cmd.Flags().StringVar(&computeType, "compute-type", "",
		"Compute type, e.g. float16, int8, int8_float16 (overrides config)")
	Cmd.Flags().StringVar(&language, "language", "",
		"Language code (e.g. en, zh, ja) or 'auto' (overrides config)")
	Cmd.Flags().StringVar(&task, "task", "",
		"Task: transcribe or translate to English (overrides config)")
	Cmd.Flags().IntVar(&beamSize, "beam-size", 0,
		"Beam size for decoding (overrides config)")
	Cmd.Flags().BoolVar(&vadFilter, "vad-filter", false,
		"Enable VAD filter to remove silence")
	Cmd.Flags().BoolVar(&wordTimestamps, "word-timestamps", false,
		"Include word-level timestamps")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path")
	Cmd.Flags().StringVar(&outputFormat, "format", format.FormatText,
		"Output format: text, srt, json or json_full")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Show detailed progress")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio_file>",
	Short: "Transcribe an audio file using faster-whisper",
	Long: `Transcribe an audio file using faster-whisper.

Options come from three layers: hardcoded defaults, the config file,
and command-line flags, each overriding the previous one.`,
	Args:    cobra.ExactArgs(1),
	Example: `  wskill transcribe audio.mp3
  wskill transcribe audio.mp3 --language zh
  wskill transcribe audio.mp3 --format srt --output video.srt
  wskill transcribe audio.mp3 --model small --device cuda`,
	Run: func(cmd *cobra.Command, args []string) {
		audioPath := args[0]

		if !files.Exists(audioPath) {
			fmt.Printf("Error: Audio file not found: %s\n", audioPath)
			os.Exit(1)
		}
		if !format.Known(outputFormat) {
			fmt.Printf("Error: unknown output format: %s\n", outputFormat)
			os.Exit(1)
		}

		cfg, err := config.LoadFile(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		cfg = cfg.Apply(overridesFromFlags(cmd))

		runner := app.InitializeRunner(verbose)
		defer runner.Close()

		output, err := runner.Run(cmd.Context(), apptranscribe.Request{
			AudioPath:  audioPath,
			Config:     cfg,
			Format:     outputFormat,
			OutputPath: outputPath,
		})
		if err != nil {
			fmt.Printf("Error during transcription: %v\n", err)
			os.Exit(1)
		}

		if outputPath != "" {
			if err := files.SaveOutput(output, outputPath); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Saved to: %s\n", outputPath)
		} else {
			fmt.Println(output)
		}
	},
}

// overridesFromFlags collects only the flags the user actually set, so
// unset flags never clobber config file values.
func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{}
	if cmd.Flags().Changed("model") {
		o.ModelSize = &modelSize
	}
	if cmd.Flags().Changed("device") {
		o.Device = &device
	}
	if cmd.Flags().Changed("compute-type") {
		o.ComputeType = &computeType
	}
	if cmd.Flags().Changed("language") {
		o.Language = &language
	}
	if cmd.Flags().Changed("task") {
		o.Task = &task
	}
	if cmd.Flags().Changed("beam-size") {
		o.BeamSize = &beamSize
	}
	if cmd.Flags().Changed("vad-filter") {
		o.VADFilter = &vadFilter
	}
	if cmd.Flags().Changed("word-timestamps") {
		o.WordTimestamps = &wordTimestamps
	}
	return o
}
